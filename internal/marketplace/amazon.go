package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultAmazonURL  = "https://www.amazon.com"
	maxBooksPerSearch = 20
)

// Book is one competing listing extracted from a search result page.
type Book struct {
	Title        string  `json:"title"`
	URL          string  `json:"url,omitempty"`
	Price        float64 `json:"price,omitempty"`
	ReviewsCount int     `json:"reviews_count,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	Format       string  `json:"format,omitempty"`
}

// MarketData is the competition picture for one keyword.
type MarketData struct {
	ResultsCount     int      `json:"search_results_count"`
	TopBooks         []Book   `json:"top_books"`
	AvgPrice         float64  `json:"avg_price"`
	AvgReviews       float64  `json:"avg_reviews"`
	Categories       []string `json:"categories"`
	CompetitionLevel string   `json:"competition_level"`
}

var (
	resultsOfRe    = regexp.MustCompile(`(?i)of\s+(?:over\s+)?([0-9,]+)\s+results`)
	resultsPlainRe = regexp.MustCompile(`(?i)([0-9,]+)\s+results`)
	numberRe       = regexp.MustCompile(`[0-9][0-9,]*`)
	decimalRe      = regexp.MustCompile(`[\d.]+`)
)

// CompetitionRater maps a results count onto a human-readable band.
// Wired to analysis.CompetitionLevel at construction to keep the band
// thresholds in one place.
type CompetitionRater func(resultsCount int) string

// AmazonAnalyzer scrapes the books search results page for competition
// signals. Scrape failures are absorbed: callers always get a MarketData,
// zero-valued when the marketplace was unreachable.
type AmazonAnalyzer struct {
	BaseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitBreaker
	logger     *logrus.Logger
	userAgent  string
	rater      CompetitionRater
}

func NewAmazonAnalyzer(logger *logrus.Logger, limiter *rate.Limiter, userAgent string, rater CompetitionRater) *AmazonAnalyzer {
	if logger == nil {
		logger = logrus.New()
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	if rater == nil {
		rater = func(int) string { return "Unknown" }
	}
	return &AmazonAnalyzer{
		BaseURL:    defaultAmazonURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		breaker:    newCircuitBreaker(3, 2*time.Minute, logger),
		logger:     logger,
		userAgent:  userAgent,
		rater:      rater,
	}
}

// AnalyzeCompetition scrapes the books search page for a keyword and
// aggregates the competition signals.
func (a *AmazonAnalyzer) AnalyzeCompetition(ctx context.Context, keyword string) MarketData {
	data := MarketData{
		TopBooks:         []Book{},
		Categories:       []string{},
		CompetitionLevel: "Unknown",
	}

	var count int
	var books []Book
	err := a.breaker.Call(func() error {
		var scrapeErr error
		count, books, scrapeErr = a.searchBooks(ctx, keyword)
		return scrapeErr
	})
	if err != nil {
		a.logger.WithError(err).WithField("keyword", keyword).Warn("marketplace scrape failed")
		return data
	}

	data.ResultsCount = count
	if len(books) > 10 {
		data.TopBooks = books[:10]
	} else {
		data.TopBooks = books
	}
	data.AvgPrice = averagePrice(books)
	data.AvgReviews = averageReviews(books)
	data.Categories = inferCategories(books)
	data.CompetitionLevel = a.rater(count)
	return data
}

func (a *AmazonAnalyzer) searchBooks(ctx context.Context, keyword string) (int, []Book, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	searchURL := fmt.Sprintf("%s/s?k=%s&i=stripbooks&ref=sr_pg_1", a.BaseURL, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("parse search page: %w", err)
	}
	return extractResultsCount(doc), extractBooks(a.BaseURL, doc), nil
}

// extractResultsCount finds the total result count in the info bar, e.g.
// "1-16 of over 50,000 results for".
func extractResultsCount(doc *goquery.Document) int {
	count := 0
	doc.Find(`span[data-component-type="s-result-info-bar"] span, .s-result-info-bar span, .a-section .a-size-base`).
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if m := resultsOfRe.FindStringSubmatch(text); m != nil {
				count = parseThousands(m[1])
				return false
			}
			if m := resultsPlainRe.FindStringSubmatch(text); m != nil {
				count = parseThousands(m[1])
				return false
			}
			return true
		})
	return count
}

func extractBooks(baseURL string, doc *goquery.Document) []Book {
	var books []Book
	doc.Find(`div[data-component-type="s-search-result"]`).
		EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= maxBooksPerSearch {
				return false
			}
			book := Book{}

			titleLink := s.Find("h2 a").First()
			book.Title = strings.TrimSpace(titleLink.Text())
			if href, ok := titleLink.Attr("href"); ok && href != "" {
				book.URL = baseURL + href
			}

			priceText := s.Find("span.a-price span.a-offscreen").First().Text()
			if priceText == "" {
				priceText = s.Find("span.a-price-whole").First().Text()
			}
			if m := decimalRe.FindString(priceText); m != "" {
				book.Price, _ = strconv.ParseFloat(m, 64)
			}

			reviewsText := s.Find("span[aria-label$='ratings'], span[aria-label$='rating'], a.a-link-normal span.a-size-base").First().Text()
			if m := numberRe.FindString(reviewsText); m != "" {
				book.ReviewsCount = parseThousands(m)
			}

			ratingText := s.Find("span.a-icon-alt").First().Text()
			if m := decimalRe.FindString(ratingText); m != "" {
				book.Rating, _ = strconv.ParseFloat(m, 64)
			}

			book.Format = strings.TrimSpace(s.Find("span.a-size-base-plus").First().Text())

			if book.Title != "" {
				books = append(books, book)
			}
			return true
		})
	return books
}

func parseThousands(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}

func averagePrice(books []Book) float64 {
	var sum float64
	var n int
	for _, b := range books {
		if b.Price > 0 {
			sum += b.Price
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func averageReviews(books []Book) float64 {
	var sum float64
	var n int
	for _, b := range books {
		if b.ReviewsCount > 0 {
			sum += float64(b.ReviewsCount)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// inferCategories guesses listing categories from the top titles.
func inferCategories(books []Book) []string {
	rules := []struct {
		category string
		words    []string
	}{
		{"Cooking & Food", []string{"cookbook", "recipe", "cooking"}},
		{"Romance", []string{"romance", "love"}},
		{"Mystery & Thriller", []string{"mystery", "thriller", "crime"}},
		{"Business", []string{"business", "entrepreneur", "success"}},
		{"Health & Fitness", []string{"health", "fitness", "diet"}},
		{"Children's Books", []string{"children", "kids"}},
	}

	seen := map[string]struct{}{}
	var categories []string
	limit := len(books)
	if limit > 5 {
		limit = 5
	}
	for _, b := range books[:limit] {
		title := strings.ToLower(b.Title)
		for _, rule := range rules {
			for _, w := range rule.words {
				if strings.Contains(title, w) {
					if _, dup := seen[rule.category]; !dup {
						seen[rule.category] = struct{}{}
						categories = append(categories, rule.category)
					}
					break
				}
			}
		}
	}
	if categories == nil {
		categories = []string{}
	}
	return categories
}
