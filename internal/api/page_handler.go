package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	readability "github.com/go-shiori/go-readability"

	"github.com/julisunkan/Ktrend/internal/keywords"
)

const (
	pageFetchTimeout = 15 * time.Second
	pageMaxBytes     = 4 << 20
	pageMaxPhrases   = 10
)

type analyzePageRequest struct {
	URL string `json:"url"`
}

// POST /analyze/page fetches a web page, strips it down to its readable
// text and mines it for key phrases and keyword suggestions.
func AnalyzePageHandler(svc *Services) gin.HandlerFunc {
	client := &http.Client{Timeout: pageFetchTimeout}

	return func(c *gin.Context) {
		var req analyzePageRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		parsed, err := url.Parse(req.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url must be http or https"})
			return
		}

		article, err := fetchArticle(c, client, parsed)
		if err != nil {
			svc.Logger.WithError(err).WithField("url", req.URL).Warn("[API] page fetch failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch page"})
			return
		}

		phrases := keywords.KeyPhrases(article.TextContent, pageMaxPhrases)

		// Phrases straight off the page, plus book-angle variations of
		// the strongest one.
		suggested := append([]string{}, phrases...)
		if len(phrases) > 0 {
			suggested = append(suggested, keywords.TemplateVariations(phrases[0], "books")...)
		}

		c.JSON(http.StatusOK, gin.H{
			"title":       article.Title,
			"excerpt":     article.Excerpt,
			"key_phrases": phrases,
			"suggested":   suggested,
		})
	}
}

func fetchArticle(c *gin.Context, client *http.Client, pageURL *url.URL) (*readability.Article, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), "GET", pageURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; KtrendBot/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, pageMaxBytes)
	article, err := readability.FromReader(body, pageURL)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
