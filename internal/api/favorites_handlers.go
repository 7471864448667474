package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/julisunkan/Ktrend/internal/db"
	"github.com/julisunkan/Ktrend/internal/research"
)

type favoriteRequest struct {
	Keyword string `json:"keyword"`
	Action  string `json:"action"`
	Notes   string `json:"notes"`
}

// GET /favorites
func ListFavoritesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var favorites []research.FavoriteKeyword
		if err := db.DB.Order("created_at desc").Find(&favorites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": favorites})
	}
}

// POST /favorites adds or removes a keyword, with duplicate detection.
func UpdateFavoritesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		req.Keyword = strings.TrimSpace(req.Keyword)
		if req.Keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
			return
		}
		if req.Action == "" {
			req.Action = "add"
		}

		switch req.Action {
		case "add":
			var existing research.FavoriteKeyword
			err := db.DB.Where("keyword = ?", req.Keyword).First(&existing).Error
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "Already in favorites"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check favorites"})
				return
			}
			favorite := research.FavoriteKeyword{Keyword: req.Keyword, Notes: req.Notes}
			if err := db.DB.Create(&favorite).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to favorites"})

		case "remove":
			res := db.DB.Where("keyword = ?", req.Keyword).Delete(&research.FavoriteKeyword{})
			if res.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
				return
			}
			if res.RowsAffected == 0 {
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not found in favorites"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from favorites"})

		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be add or remove"})
		}
	}
}
