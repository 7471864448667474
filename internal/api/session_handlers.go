package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /sessions
func ListSessionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := recentSessions(100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return 0, false
	}
	return uint(id), true
}

// GET /session/:id loads a saved session into the browser session so
// clustering and exports operate on it.
func LoadSessionHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}

		saved, err := sessionByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
			return
		}

		results, err := saved.Results()
		if err != nil {
			svc.Logger.WithError(err).Error("[API] decode stored session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stored session is corrupt"})
			return
		}

		browserID := svc.Sessions.Current(c)
		if err := svc.Sessions.SaveResults(c.Request.Context(), browserID, results); err != nil {
			svc.Logger.WithError(err).Warn("[API] cache loaded session")
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"session_name": saved.Name,
			"results":      results,
		})
	}
}

// DELETE /session/:id
func DeleteSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}
		if _, err := sessionByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err := deleteSession(id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
