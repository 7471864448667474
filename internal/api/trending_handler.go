package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /trending serves the cached topic list, refreshed by the worker.
func TrendingHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		topics := svc.Trending.Topics(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"trends": topics})
	}
}

// GET /trending/questions?topic= surfaces what readers are asking about
// a topic, a useful angle for book titles.
func TopicQuestionsHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := c.Query("topic")
		if topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
			return
		}
		questions, err := svc.Questions.TopicQuestions(c.Request.Context(), topic)
		if err != nil {
			svc.Logger.WithError(err).Warn("[API] topic questions")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch questions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"topic": topic, "questions": questions})
	}
}
