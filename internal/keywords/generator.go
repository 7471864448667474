package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultGoogleSuggestURL = "https://suggestqueries.google.com/complete/search"
	defaultDuckDuckGoURL    = "https://duckduckgo.com/ac/"
	defaultWikipediaURL     = "https://en.wikipedia.org/w/api.php"

	maxExpanded          = 20
	maxPerGoogleSource   = 10
	maxPerDuckDuckGo     = 10
	maxPerWikipedia      = 8
	defaultSourceTimeout = 10 * time.Second
)

// Generator aggregates keyword suggestions from free autocomplete sources.
// Each source failure is logged and skipped; the merged result is capped at
// maxExpanded suggestions with the seed itself removed.
type Generator struct {
	GoogleURL     string
	DuckDuckGoURL string
	WikipediaURL  string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	userAgent  string
}

// NewGenerator creates a suggestion aggregator. The rate limiter is shared
// across all outbound source calls to stay polite.
func NewGenerator(logger *logrus.Logger, limiter *rate.Limiter, userAgent string) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)
	}
	return &Generator{
		GoogleURL:     defaultGoogleSuggestURL,
		DuckDuckGoURL: defaultDuckDuckGoURL,
		WikipediaURL:  defaultWikipediaURL,
		httpClient:    &http.Client{Timeout: defaultSourceTimeout},
		limiter:       limiter,
		logger:        logger,
		userAgent:     userAgent,
	}
}

// Expand merges suggestions from every source, deduplicated and capped.
func (g *Generator) Expand(ctx context.Context, keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	seen := map[string]struct{}{strings.ToLower(keyword): {}}
	var merged []string
	add := func(suggestions []string) {
		for _, s := range suggestions {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			lower := strings.ToLower(s)
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			merged = append(merged, s)
		}
	}

	if suggestions, err := g.GoogleAutocomplete(ctx, keyword); err != nil {
		g.logger.WithError(err).WithField("keyword", keyword).Warn("google autocomplete failed")
	} else {
		add(suggestions)
	}
	if suggestions, err := g.DuckDuckGoSuggestions(ctx, keyword); err != nil {
		g.logger.WithError(err).WithField("keyword", keyword).Warn("duckduckgo suggestions failed")
	} else {
		add(suggestions)
	}
	if suggestions, err := g.WikipediaSuggestions(ctx, keyword); err != nil {
		g.logger.WithError(err).WithField("keyword", keyword).Warn("wikipedia suggestions failed")
	} else {
		add(suggestions)
	}

	if len(merged) > maxExpanded {
		merged = merged[:maxExpanded]
	}
	return merged
}

// GoogleAutocomplete queries the public suggest endpoint with the firefox
// client, which answers ["seed", ["suggestion", ...]].
func (g *Generator) GoogleAutocomplete(ctx context.Context, keyword string) ([]string, error) {
	params := url.Values{}
	params.Set("client", "firefox")
	params.Set("q", keyword)

	body, err := g.fetch(ctx, g.GoogleURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode google suggest response: %w", err)
	}
	if len(payload) < 2 {
		return nil, nil
	}
	var suggestions []string
	if err := json.Unmarshal(payload[1], &suggestions); err != nil {
		return nil, fmt.Errorf("decode google suggestions: %w", err)
	}

	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s != "" && !strings.EqualFold(s, keyword) {
			out = append(out, s)
		}
	}
	return capSlice(out, maxPerGoogleSource), nil
}

// DuckDuckGoSuggestions queries the ac endpoint, which answers a list of
// {"phrase": "..."} objects.
func (g *Generator) DuckDuckGoSuggestions(ctx context.Context, keyword string) ([]string, error) {
	params := url.Values{}
	params.Set("q", keyword)

	body, err := g.fetch(ctx, g.DuckDuckGoURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload []struct {
		Phrase string `json:"phrase"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode duckduckgo response: %w", err)
	}

	out := make([]string, 0, len(payload))
	for _, p := range payload {
		if p.Phrase != "" {
			out = append(out, p.Phrase)
		}
	}
	return capSlice(out, maxPerDuckDuckGo), nil
}

// WikipediaSuggestions uses the opensearch action, which answers
// ["seed", [titles], [descriptions], [urls]].
func (g *Generator) WikipediaSuggestions(ctx context.Context, keyword string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("search", keyword)
	params.Set("limit", "10")
	params.Set("namespace", "0")
	params.Set("format", "json")

	body, err := g.fetch(ctx, g.WikipediaURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode wikipedia response: %w", err)
	}
	if len(payload) < 2 {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal(payload[1], &titles); err != nil {
		return nil, fmt.Errorf("decode wikipedia titles: %w", err)
	}
	return capSlice(titles, maxPerWikipedia), nil
}

func (g *Generator) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func capSlice(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
