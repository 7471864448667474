package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPageviewsURL = "https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/user"

// pageviewsClient reads monthly article view counts from the Wikimedia
// pageviews REST API. Views serve as the keyword interest signal.
type pageviewsClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func newPageviewsClient(userAgent string) *pageviewsClient {
	return &pageviewsClient{
		baseURL:    defaultPageviewsURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
	}
}

// MonthlyViews returns up to months raw monthly view counts for an article,
// oldest first.
func (c *pageviewsClient) MonthlyViews(ctx context.Context, article string, months int) ([]float64, error) {
	if months <= 0 {
		months = 12
	}
	now := time.Now().UTC()
	start := now.AddDate(0, -months, 0)

	endpoint := fmt.Sprintf("%s/%s/monthly/%s/%s",
		c.baseURL,
		url.PathEscape(strings.ReplaceAll(article, " ", "_")),
		start.Format("20060102"),
		now.Format("20060102"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pageviews request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pageviews: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// Article exists but has no view data for the period.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pageviews returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read pageviews: %w", err)
	}

	var payload struct {
		Items []struct {
			Timestamp string  `json:"timestamp"`
			Views     float64 `json:"views"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode pageviews: %w", err)
	}

	views := make([]float64, 0, len(payload.Items))
	for _, item := range payload.Items {
		views = append(views, item.Views)
	}
	return views, nil
}

// normalizeSeries scales raw counts onto a 0-100 interest scale where the
// period peak is 100.
func normalizeSeries(raw []float64) []float64 {
	if len(raw) == 0 {
		return nil
	}
	var max float64
	for _, v := range raw {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(raw))
	if max == 0 {
		return out
	}
	for i, v := range raw {
		out[i] = float64(int(v/max*10000)) / 100
	}
	return out
}
