package research

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/julisunkan/Ktrend/internal/analysis"
	"github.com/julisunkan/Ktrend/internal/marketplace"
	"github.com/julisunkan/Ktrend/internal/trends"
)

// Expander produces suggestion expansions for a seed keyword.
type Expander interface {
	Expand(ctx context.Context, keyword string) []string
}

// TrendSource produces interest-over-time and related queries for a keyword.
type TrendSource interface {
	KeywordTrends(ctx context.Context, keyword string) trends.Data
}

// MarketSource produces marketplace competition data for a keyword.
type MarketSource interface {
	AnalyzeCompetition(ctx context.Context, keyword string) marketplace.MarketData
}

// Service runs the full research pipeline for a batch of keywords. Each
// upstream source may fail independently; a failed source contributes
// zero-valued data and the remaining signals still produce scores.
type Service struct {
	expander Expander
	trends   TrendSource
	market   MarketSource
	logger   *logrus.Logger
}

func NewService(expander Expander, trendSource TrendSource, market MarketSource, logger *logrus.Logger) *Service {
	return &Service{
		expander: expander,
		trends:   trendSource,
		market:   market,
		logger:   logger,
	}
}

// ResearchKeyword analyzes a single keyword end to end.
func (s *Service) ResearchKeyword(ctx context.Context, keyword string) KeywordResult {
	keyword = strings.TrimSpace(keyword)

	expanded := s.expander.Expand(ctx, keyword)
	trendData := s.trends.KeywordTrends(ctx, keyword)
	marketData := s.market.AnalyzeCompetition(ctx, keyword)

	difficulty := analysis.DifficultyScore(marketData.ResultsCount, trendData.InterestOverTime)
	profitability := analysis.ProfitabilityScore(difficulty, trendData.AverageInterest, marketData.AvgPrice)

	return KeywordResult{
		Keyword:            keyword,
		Expanded:           expanded,
		Trends:             trendData,
		Market:             marketData,
		DifficultyScore:    difficulty,
		ProfitabilityScore: profitability,
		ScoreColor:         analysis.ScoreColor(profitability),
	}
}

// ResearchAll analyzes every non-blank keyword in order.
func (s *Service) ResearchAll(ctx context.Context, keywords []string) []KeywordResult {
	results := make([]KeywordResult, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		if ctx.Err() != nil {
			s.logger.WithError(ctx.Err()).Warn("[Research] batch cancelled")
			break
		}
		results = append(results, s.ResearchKeyword(ctx, kw))
	}
	return results
}
