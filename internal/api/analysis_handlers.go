package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julisunkan/Ktrend/internal/analysis"
	"github.com/julisunkan/Ktrend/internal/research"
)

// GET /strategy buckets the current session's keywords into
// high-potential, avoid, long-tail and niche lists with tips.
func StrategyHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, ok := currentResults(c, svc)
		if !ok {
			return
		}

		scored := make([]analysis.ScoredKeyword, 0, len(results))
		for _, r := range results {
			scored = append(scored, analysis.ScoredKeyword{
				Keyword:       r.Keyword,
				Difficulty:    r.DifficultyScore,
				Profitability: r.ProfitabilityScore,
				ResultsCount:  r.Market.ResultsCount,
			})
		}
		c.JSON(http.StatusOK, gin.H{"strategy": analysis.RecommendStrategy(scored)})
	}
}

// GET /patterns reports structural patterns across the current
// session's keywords.
func PatternsHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, ok := currentResults(c, svc)
		if !ok {
			return
		}
		report := analysis.AnalyzePatterns(research.Keywords(results))
		c.JSON(http.StatusOK, gin.H{"patterns": report})
	}
}

func currentResults(c *gin.Context, svc *Services) ([]research.KeywordResult, bool) {
	sessionID := svc.Sessions.Current(c)
	results, err := svc.Sessions.LoadResults(c.Request.Context(), sessionID)
	if err != nil {
		svc.Logger.WithError(err).Error("[API] load current results")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return nil, false
	}
	if len(results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No keywords analyzed yet"})
		return nil, false
	}
	return results, true
}
