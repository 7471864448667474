package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Daily Search Trends</title>
<item><title>sourdough starter</title><link>https://x</link></item>
<item><title>heat wave</title><link>https://y</link></item>
<item><title></title></item>
</channel></rss>`

const atomFixture = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>headlines</title>
<entry><title>election results</title></entry>
<entry><title>sourdough starter</title></entry>
</feed>`

func TestFeedClient_ParsesRSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	titles, err := NewFeedClient("test").FetchTitles(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 || titles[0] != "sourdough starter" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestFeedClient_ParsesAtom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atomFixture))
	}))
	defer srv.Close()

	titles, err := NewFeedClient("test").FetchTitles(context.Background(), srv.URL, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 1 || titles[0] != "election results" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestFeedClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := NewFeedClient("test").FetchTitles(context.Background(), srv.URL, 5); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestDailyTrending_MergesAndDeduplicates(t *testing.T) {
	trending := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFixture))
	}))
	defer trending.Close()
	news := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atomFixture))
	}))
	defer news.Close()

	a := NewAnalyzer(quietLogger(), nil, nil, "test", []string{news.URL})
	a.TrendingRSSURL = trending.URL

	topics := a.DailyTrending(context.Background())
	// "sourdough starter" appears in both feeds and must be kept once.
	want := []string{"sourdough starter", "heat wave", "election results"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i], want[i])
		}
	}
}

func TestDailyTrending_AllSourcesDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	a := NewAnalyzer(quietLogger(), nil, nil, "test", []string{down.URL})
	a.TrendingRSSURL = down.URL

	if topics := a.DailyTrending(context.Background()); len(topics) != 0 {
		t.Errorf("expected no topics when every source fails, got %v", topics)
	}
}

type fakeResolver struct{ titles []string }

func (f fakeResolver) WikipediaSuggestions(ctx context.Context, keyword string) ([]string, error) {
	return f.titles, nil
}

type fakeSuggester struct{ out []string }

func (f fakeSuggester) Expand(ctx context.Context, keyword string) []string { return f.out }

func TestKeywordTrends_NormalizesInterest(t *testing.T) {
	pv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"timestamp":"2025010100","views":500},
			{"timestamp":"2025020100","views":1000},
			{"timestamp":"2025030100","views":250}
		]}`))
	}))
	defer pv.Close()

	a := NewAnalyzer(quietLogger(),
		fakeSuggester{out: []string{"sourdough bread", "bread flour"}},
		fakeResolver{titles: []string{"Sourdough"}},
		"test", nil)
	a.SetPageviewsURL(pv.URL)

	data := a.KeywordTrends(context.Background(), "sourdough")
	if data.Article != "Sourdough" {
		t.Errorf("article = %q", data.Article)
	}
	if len(data.InterestOverTime) != 3 {
		t.Fatalf("series = %v", data.InterestOverTime)
	}
	if data.InterestOverTime[1] != 100 {
		t.Errorf("peak month should normalize to 100, got %v", data.InterestOverTime[1])
	}
	if data.InterestOverTime[0] != 50 || data.InterestOverTime[2] != 25 {
		t.Errorf("series not proportional: %v", data.InterestOverTime)
	}
	if data.AverageInterest <= 0 || data.AverageInterest > 100 {
		t.Errorf("average interest out of range: %v", data.AverageInterest)
	}
	if len(data.RelatedQueries.Top) != 1 || data.RelatedQueries.Top[0] != "sourdough bread" {
		t.Errorf("top queries = %v", data.RelatedQueries.Top)
	}
	if len(data.RelatedQueries.Rising) != 1 || data.RelatedQueries.Rising[0] != "bread flour" {
		t.Errorf("rising queries = %v", data.RelatedQueries.Rising)
	}
}

func TestKeywordTrends_NoArticle(t *testing.T) {
	a := NewAnalyzer(quietLogger(), nil, fakeResolver{}, "test", nil)
	data := a.KeywordTrends(context.Background(), "zxqvw")
	if len(data.InterestOverTime) != 0 || data.AverageInterest != 0 {
		t.Errorf("expected zero-valued trend data, got %+v", data)
	}
}

func TestTopicQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("intitle") != "go" {
			t.Errorf("intitle = %q", r.URL.Query().Get("intitle"))
		}
		w.Write([]byte(`{"items":[{"title":"How do goroutines work?"},{"title":"What is a channel?"}]}`))
	}))
	defer srv.Close()

	a := NewAnalyzer(quietLogger(), nil, nil, "test", nil)
	a.StackExchangeURL = srv.URL

	qs, err := a.TopicQuestions(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 || qs[0] != "How do goroutines work?" {
		t.Errorf("questions = %v", qs)
	}
}
