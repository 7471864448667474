package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julisunkan/Ktrend/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
			"sources": gin.H{
				"trending_rss_url": cfg.Sources.TrendingRSSURL,
				"news_feeds":       cfg.Sources.NewsFeeds,
			},
			"trending": cfg.Trending,
		})
	}
}

// GET / serves the dashboard payload: the newest sessions plus the
// cached trending topics.
func indexHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := recentSessions(5)
		if err != nil {
			svc.Logger.WithError(err).Error("[API] recent sessions")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
			return
		}

		topics := svc.Trending.Topics(c.Request.Context())
		if len(topics) > 10 {
			topics = topics[:10]
		}

		c.JSON(http.StatusOK, gin.H{
			"recent_sessions": sessions,
			"trending_topics": topics,
		})
	}
}
