package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julisunkan/Ktrend/internal/analysis"
	"github.com/julisunkan/Ktrend/internal/export"
	"github.com/julisunkan/Ktrend/internal/research"
)

type searchRequest struct {
	Keywords  []string `json:"keywords"`
	BulkInput string   `json:"bulk_input"`
}

// POST /search researches every submitted keyword, saves the batch as a
// ResearchSession and stores the results in the browser session.
func SearchHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req searchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		keywords := req.Keywords
		for _, line := range strings.Split(req.BulkInput, "\n") {
			if kw := strings.TrimSpace(line); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No keywords provided"})
			return
		}

		results := svc.Research.ResearchAll(c.Request.Context(), keywords)

		saved, err := saveResearchSession(results)
		if err != nil {
			svc.Logger.WithError(err).Error("[API] save research session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
			return
		}

		sessionID := svc.Sessions.Current(c)
		if err := svc.Sessions.SaveResults(c.Request.Context(), sessionID, results); err != nil {
			// The DB row is the durable copy; a cache miss just means
			// exports need a reload.
			svc.Logger.WithError(err).Warn("[API] cache current results")
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"results":    results,
			"session_id": saved.ID,
		})
	}
}

// GET /cluster groups the current session's keywords.
func ClusterHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, ok := currentResults(c, svc)
		if !ok {
			return
		}

		keywords := research.Keywords(results)
		k := analysis.DefaultClusterCount(len(keywords))
		if raw := c.Query("k"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
				return
			}
			k = parsed
		}

		c.JSON(http.StatusOK, gin.H{"clusters": analysis.ClusterKeywords(keywords, k)})
	}
}

// GET /export/:format streams the current session's results as a file.
func ExportHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.Param("format")
		contentType := export.ContentType(format)
		if contentType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export format"})
			return
		}

		sessionID := svc.Sessions.Current(c)
		results, err := svc.Sessions.LoadResults(c.Request.Context(), sessionID)
		if err != nil {
			svc.Logger.WithError(err).Error("[API] load current results")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
			return
		}

		path, err := svc.Export.Export(format, results)
		if err != nil {
			svc.Logger.WithError(err).Error("[API] export")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}

		c.Header("Content-Type", contentType)
		c.FileAttachment(path, downloadName(format))
	}
}

func downloadName(format string) string {
	switch format {
	case "csv":
		return "kdp_keywords.csv"
	case "excel":
		return "kdp_keywords.xlsx"
	default:
		return "kdp_keywords_report.pdf"
	}
}
