package trends

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// rssFeed covers the RSS 2.0 shape used by Google Trends daily trends and
// the mainstream news feeds.
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title string `xml:"title"`
}

// FeedClient fetches headline titles from RSS and Atom feeds.
type FeedClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewFeedClient(userAgent string) *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
	}
}

// FetchTitles returns up to limit item titles from the feed at feedURL.
// Atom feeds are detected by the root element.
func (c *FeedClient) FetchTitles(ctx context.Context, feedURL string, limit int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var titles []string
	var rss rssFeed
	if err := xml.Unmarshal(body, &rss); err == nil && len(rss.Channel.Items) > 0 {
		for _, item := range rss.Channel.Items {
			titles = append(titles, strings.TrimSpace(item.Title))
		}
	} else {
		var atom atomFeed
		if err := xml.Unmarshal(body, &atom); err != nil {
			return nil, fmt.Errorf("parse feed: %w", err)
		}
		for _, entry := range atom.Entries {
			titles = append(titles, strings.TrimSpace(entry.Title))
		}
	}

	out := titles[:0]
	for _, t := range titles {
		if t != "" {
			out = append(out, t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
