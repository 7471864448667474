package api

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/julisunkan/Ktrend/internal/config"
	"github.com/julisunkan/Ktrend/internal/export"
	"github.com/julisunkan/Ktrend/internal/research"
)

// SessionStore resolves the browser session and its cached results.
type SessionStore interface {
	Current(c *gin.Context) string
	SaveResults(ctx context.Context, sessionID string, results []research.KeywordResult) error
	LoadResults(ctx context.Context, sessionID string) ([]research.KeywordResult, error)
}

// TrendingSource serves the daily trending topic list.
type TrendingSource interface {
	Topics(ctx context.Context) []string
}

// QuestionSource finds reader questions around a topic.
type QuestionSource interface {
	TopicQuestions(ctx context.Context, topic string) ([]string, error)
}

// Services bundles everything the handlers depend on.
type Services struct {
	Research  *research.Service
	Sessions  SessionStore
	Export    *export.Manager
	Trending  TrendingSource
	Questions QuestionSource
	Logger    *logrus.Logger
}

func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Serve the frontend bundle when one is deployed next to the binary.
	if _, err := os.Stat("./web/static"); err == nil {
		r.Static("/static", "./web/static")
	}

	r.GET("/health", healthHandler)
	r.GET("/config", configHandler(cfg))
	r.GET("/", indexHandler(svc))

	r.POST("/search", SearchHandler(svc))
	r.GET("/favorites", ListFavoritesHandler())
	r.POST("/favorites", UpdateFavoritesHandler())
	r.GET("/sessions", ListSessionsHandler())
	r.GET("/session/:id", LoadSessionHandler(svc))
	r.DELETE("/session/:id", DeleteSessionHandler())
	r.GET("/export/:format", ExportHandler(svc))
	r.GET("/trending", TrendingHandler(svc))
	r.GET("/trending/questions", TopicQuestionsHandler(svc))
	r.GET("/cluster", ClusterHandler(svc))
	r.GET("/strategy", StrategyHandler(svc))
	r.GET("/patterns", PatternsHandler(svc))
	r.POST("/analyze/page", AnalyzePageHandler(svc))
	r.GET("/ws/research", WSResearchHandler(svc))

	return r
}
