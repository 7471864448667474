package research

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/julisunkan/Ktrend/internal/marketplace"
	"github.com/julisunkan/Ktrend/internal/trends"
)

type fakeExpander struct{ out []string }

func (f fakeExpander) Expand(ctx context.Context, keyword string) []string { return f.out }

type fakeTrends struct{ data trends.Data }

func (f fakeTrends) KeywordTrends(ctx context.Context, keyword string) trends.Data { return f.data }

type fakeMarket struct{ data marketplace.MarketData }

func (f fakeMarket) AnalyzeCompetition(ctx context.Context, keyword string) marketplace.MarketData {
	return f.data
}

func testService() *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewService(
		fakeExpander{out: []string{"vegan cookbook for beginners"}},
		fakeTrends{data: trends.Data{
			InterestOverTime: []float64{50, 100, 75},
			AverageInterest:  75,
			RelatedQueries:   trends.RelatedQueries{Top: []string{"vegan recipes"}},
		}},
		fakeMarket{data: marketplace.MarketData{
			ResultsCount:     5000,
			AvgPrice:         14.99,
			CompetitionLevel: "Low competition",
		}},
		logger,
	)
}

func TestResearchKeyword_ComposesScores(t *testing.T) {
	got := testService().ResearchKeyword(context.Background(), "  vegan cookbook  ")

	if got.Keyword != "vegan cookbook" {
		t.Errorf("keyword not trimmed: %q", got.Keyword)
	}
	if got.DifficultyScore <= 0 || got.DifficultyScore > 100 {
		t.Errorf("difficulty out of range: %v", got.DifficultyScore)
	}
	if got.ProfitabilityScore <= 0 || got.ProfitabilityScore > 100 {
		t.Errorf("profitability out of range: %v", got.ProfitabilityScore)
	}
	if got.ScoreColor == "" {
		t.Errorf("score color missing")
	}
	if len(got.Expanded) != 1 {
		t.Errorf("expanded = %v", got.Expanded)
	}
}

func TestResearchKeyword_AllSourcesDown(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	svc := NewService(
		fakeExpander{},
		fakeTrends{data: trends.Data{}},
		fakeMarket{data: marketplace.MarketData{CompetitionLevel: "Unknown"}},
		logger,
	)

	got := svc.ResearchKeyword(context.Background(), "anything")
	if got.DifficultyScore != 0 {
		t.Errorf("zero signals should give zero difficulty, got %v", got.DifficultyScore)
	}
	// 0.4*(100-0) floors profitability at 40 + neutral price factor.
	if got.ProfitabilityScore <= 0 {
		t.Errorf("profitability should stay positive on missing signals: %v", got.ProfitabilityScore)
	}
}

func TestResearchAll_SkipsBlanks(t *testing.T) {
	results := testService().ResearchAll(context.Background(), []string{"knitting", "  ", "", "gardening"})
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Keyword != "knitting" || results[1].Keyword != "gardening" {
		t.Errorf("unexpected order: %v", Keywords(results))
	}
}

func TestNewSession_RoundTrip(t *testing.T) {
	results := testService().ResearchAll(context.Background(), []string{"vegan cookbook"})

	session, err := NewSession(results)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if !strings.HasPrefix(session.Name, "Research ") {
		t.Errorf("name = %q", session.Name)
	}

	restored, err := session.Results()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(restored) != 1 || restored[0].Keyword != "vegan cookbook" {
		t.Errorf("restored = %+v", restored)
	}
	if restored[0].Trends.AverageInterest != 75 {
		t.Errorf("trend data lost in round trip: %+v", restored[0].Trends)
	}
}

func TestSessionResults_EmptyAndCorrupt(t *testing.T) {
	empty := &ResearchSession{}
	if results, err := empty.Results(); err != nil || len(results) != 0 {
		t.Errorf("empty payload: results=%v err=%v", results, err)
	}

	corrupt := &ResearchSession{Data: []byte("{not json")}
	if _, err := corrupt.Results(); err == nil {
		t.Errorf("corrupt payload should fail to decode")
	}
}
