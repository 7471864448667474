package marketplace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const searchFixture = `<html><body>
<span data-component-type="s-result-info-bar"><span>1-16 of over 40,000 results for "vegan cookbook"</span></span>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B001">The Vegan Cookbook for Busy People</a></h2>
  <span class="a-price"><span class="a-offscreen">$14.99</span></span>
  <span aria-label="2,314 ratings">2,314</span>
  <span class="a-icon-alt">4.6 out of 5 stars</span>
  <span class="a-size-base-plus">Paperback</span>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B002">Mystery at the Bakery</a></h2>
  <span class="a-price"><span class="a-offscreen">$9.50</span></span>
  <span class="a-icon-alt">4.1 out of 5 stars</span>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B003"></a></h2>
</div>
</body></html>`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func fixedRater(count int) string {
	if count >= 10000 {
		return "High competition"
	}
	return "Low competition"
}

func testAnalyzer(baseURL string) *AmazonAnalyzer {
	a := NewAmazonAnalyzer(quietLogger(), rate.NewLimiter(rate.Inf, 1), "ktrend-test", fixedRater)
	a.BaseURL = baseURL
	return a
}

func TestAnalyzeCompetition_ParsesSearchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") != "stripbooks" {
			t.Errorf("expected books search, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	got := testAnalyzer(srv.URL).AnalyzeCompetition(context.Background(), "vegan cookbook")

	if got.ResultsCount != 40000 {
		t.Errorf("results count = %d, want 40000", got.ResultsCount)
	}
	// The titleless card must be dropped.
	if len(got.TopBooks) != 2 {
		t.Fatalf("books = %+v", got.TopBooks)
	}
	b := got.TopBooks[0]
	if b.Title != "The Vegan Cookbook for Busy People" {
		t.Errorf("title = %q", b.Title)
	}
	if b.Price != 14.99 {
		t.Errorf("price = %v", b.Price)
	}
	if b.ReviewsCount != 2314 {
		t.Errorf("reviews = %d", b.ReviewsCount)
	}
	if b.Rating != 4.6 {
		t.Errorf("rating = %v", b.Rating)
	}
	if b.Format != "Paperback" {
		t.Errorf("format = %q", b.Format)
	}
	if got.AvgPrice != (14.99+9.50)/2 {
		t.Errorf("avg price = %v", got.AvgPrice)
	}
	if got.CompetitionLevel != "High competition" {
		t.Errorf("competition level = %q", got.CompetitionLevel)
	}
	foundCooking := false
	for _, c := range got.Categories {
		if c == "Cooking & Food" {
			foundCooking = true
		}
	}
	if !foundCooking {
		t.Errorf("categories = %v", got.Categories)
	}
}

func TestAnalyzeCompetition_ScrapeFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "captcha", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	got := testAnalyzer(srv.URL).AnalyzeCompetition(context.Background(), "anything")
	if got.ResultsCount != 0 || len(got.TopBooks) != 0 {
		t.Errorf("expected zero-valued data, got %+v", got)
	}
	if got.CompetitionLevel != "Unknown" {
		t.Errorf("competition level = %q, want Unknown", got.CompetitionLevel)
	}
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := newCircuitBreaker(2, time.Minute, quietLogger())
	fail := func() error { return errors.New("boom") }

	if err := cb.Call(fail); err == nil {
		t.Fatal("expected failure")
	}
	if cb.State() != "closed" {
		t.Errorf("one failure should not open the circuit, state = %s", cb.State())
	}
	cb.Call(fail)
	if cb.State() != "open" {
		t.Errorf("threshold failures should open the circuit, state = %s", cb.State())
	}
	if err := cb.Call(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("open circuit should reject calls, got %v", err)
	}
}

func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	cb := newCircuitBreaker(1, time.Second, quietLogger())
	cb.Call(func() error { return errors.New("boom") })
	if cb.State() != "open" {
		t.Fatalf("state = %s", cb.State())
	}

	// Force the cooldown to elapse instead of sleeping.
	cb.mu.Lock()
	cb.lastFailureTime = time.Now().Add(-2 * time.Second)
	cb.mu.Unlock()

	ok := func() error { return nil }
	if err := cb.Call(ok); err != nil {
		t.Fatalf("probe call should pass: %v", err)
	}
	cb.Call(ok)
	if cb.State() != "closed" {
		t.Errorf("successful probes should close the circuit, state = %s", cb.State())
	}
}
