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

	"github.com/sirupsen/logrus"
)

const (
	defaultTrendingRSSURL    = "https://trends.google.com/trending/rss?geo=US"
	defaultStackExchangeURL  = "https://api.stackexchange.com/2.3/search"
	defaultStackExchangeSite = "stackoverflow"
	maxTrendingTopics        = 20
	maxTitlesPerFeed         = 5
	maxTopicQuestions        = 8
	defaultInterestMonths    = 12
)

// Data is the trend signal bundle for one keyword.
type Data struct {
	InterestOverTime []float64      `json:"interest_over_time"`
	AverageInterest  float64        `json:"average_interest"`
	RelatedQueries   RelatedQueries `json:"related_queries"`
	Article          string         `json:"article,omitempty"`
}

// RelatedQueries splits suggestions into established and emerging phrasings.
type RelatedQueries struct {
	Top    []string `json:"top"`
	Rising []string `json:"rising"`
}

// Suggester supplies keyword expansions for related-query derivation.
type Suggester interface {
	Expand(ctx context.Context, keyword string) []string
}

// ArticleResolver maps a keyword to its best-matching encyclopedia article.
type ArticleResolver interface {
	WikipediaSuggestions(ctx context.Context, keyword string) ([]string, error)
}

// Analyzer collects trend signals. Interest over time comes from Wikipedia
// article pageviews normalized to a 0-100 scale; related queries are derived
// from autocomplete expansion. Every signal degrades to its zero value when
// a source is unavailable.
type Analyzer struct {
	TrendingRSSURL    string
	NewsFeedURLs      []string
	StackExchangeURL  string
	StackExchangeSite string

	feeds     *FeedClient
	pageviews *pageviewsClient
	suggester Suggester
	resolver  ArticleResolver
	logger    *logrus.Logger
	client    *http.Client
}

func NewAnalyzer(logger *logrus.Logger, suggester Suggester, resolver ArticleResolver, userAgent string, newsFeeds []string) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		TrendingRSSURL:    defaultTrendingRSSURL,
		NewsFeedURLs:      newsFeeds,
		StackExchangeURL:  defaultStackExchangeURL,
		StackExchangeSite: defaultStackExchangeSite,
		feeds:             NewFeedClient(userAgent),
		pageviews:         newPageviewsClient(userAgent),
		suggester:         suggester,
		resolver:          resolver,
		logger:            logger,
		client:            &http.Client{Timeout: 10 * time.Second},
	}
}

// SetPageviewsURL overrides the pageviews endpoint (tests).
func (a *Analyzer) SetPageviewsURL(u string) { a.pageviews.baseURL = u }

// KeywordTrends assembles the trend bundle for one keyword.
func (a *Analyzer) KeywordTrends(ctx context.Context, keyword string) Data {
	data := Data{
		InterestOverTime: []float64{},
		RelatedQueries:   RelatedQueries{Top: []string{}, Rising: []string{}},
	}

	article := a.resolveArticle(ctx, keyword)
	if article != "" {
		data.Article = article
		raw, err := a.pageviews.MonthlyViews(ctx, article, defaultInterestMonths)
		if err != nil {
			a.logger.WithError(err).WithField("keyword", keyword).Warn("pageviews lookup failed")
		} else if len(raw) > 0 {
			data.InterestOverTime = normalizeSeries(raw)
			var sum float64
			for _, v := range data.InterestOverTime {
				sum += v
			}
			data.AverageInterest = float64(int(sum/float64(len(data.InterestOverTime))*100)) / 100
		}
	}

	if a.suggester != nil {
		expanded := a.suggester.Expand(ctx, keyword)
		lower := strings.ToLower(keyword)
		for _, s := range expanded {
			if strings.Contains(strings.ToLower(s), lower) {
				data.RelatedQueries.Top = append(data.RelatedQueries.Top, s)
			} else {
				data.RelatedQueries.Rising = append(data.RelatedQueries.Rising, s)
			}
		}
	}
	return data
}

func (a *Analyzer) resolveArticle(ctx context.Context, keyword string) string {
	if a.resolver == nil {
		return ""
	}
	titles, err := a.resolver.WikipediaSuggestions(ctx, keyword)
	if err != nil {
		a.logger.WithError(err).WithField("keyword", keyword).Warn("article lookup failed")
		return ""
	}
	if len(titles) == 0 {
		return ""
	}
	return titles[0]
}

// DailyTrending merges trending searches and news headlines into one
// deduplicated topic list, capped at 20.
func (a *Analyzer) DailyTrending(ctx context.Context) []string {
	var topics []string

	if titles, err := a.feeds.FetchTitles(ctx, a.TrendingRSSURL, 10); err != nil {
		a.logger.WithError(err).Warn("trending feed failed")
	} else {
		topics = append(topics, titles...)
	}

	for _, feedURL := range a.NewsFeedURLs {
		titles, err := a.feeds.FetchTitles(ctx, feedURL, maxTitlesPerFeed)
		if err != nil {
			a.logger.WithError(err).WithField("feed", feedURL).Warn("news feed failed")
			continue
		}
		topics = append(topics, titles...)
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(t))
		if len(out) == maxTrendingTopics {
			break
		}
	}
	return out
}

// TopicQuestions pulls top-voted question titles mentioning the topic from
// the Stack Exchange API.
func (a *Analyzer) TopicQuestions(ctx context.Context, topic string) ([]string, error) {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "votes")
	params.Set("intitle", topic)
	params.Set("site", a.StackExchangeSite)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.StackExchangeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stackexchange request: %w", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stackexchange request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stackexchange returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read stackexchange response: %w", err)
	}

	var payload struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode stackexchange response: %w", err)
	}

	var questions []string
	for _, item := range payload.Items {
		title := strings.TrimSpace(item.Title)
		if title != "" {
			questions = append(questions, title)
		}
		if len(questions) == maxTopicQuestions {
			break
		}
	}
	return questions, nil
}
