package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/julisunkan/Ktrend/internal/research"
)

const testSecret = "my_test_session_secret"

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, "abc-123", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if tokenString == "" {
		t.Fatalf("empty token string")
	}

	claims, err := ParseToken(testSecret, tokenString)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.SessionID != "abc-123" {
		t.Errorf("expected sessionId abc-123, got %q", claims.SessionID)
	}
}

func TestParseToken_Tampered(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, "abc-123", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := tokenString[:len(tokenString)-2] + "xx"
	if _, err := ParseToken(testSecret, tampered); err == nil {
		t.Errorf("tampered token should be rejected")
	}
	if _, err := ParseToken("other_secret", tokenString); err == nil {
		t.Errorf("token signed with another secret should be rejected")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, "abc-123", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(testSecret, tokenString); err == nil {
		t.Errorf("expired token should be rejected")
	}
}

func TestCurrent_MintsAndReusesSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewStore(nil, testSecret)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	id := store.Current(c)
	if id == "" {
		t.Fatalf("expected a session id")
	}

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Errorf("session cookie should be http-only")
	}

	// Replaying the cookie must resolve to the same session.
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest("GET", "/", nil)
	c2.Request.AddCookie(cookie)

	if again := store.Current(c2); again != id {
		t.Errorf("expected session %q, got %q", id, again)
	}
}

func TestCurrent_RejectsForgedCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewStore(nil, testSecret)

	forged, err := GenerateToken("attacker_secret", "stolen-id", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: forged})

	if id := store.Current(c); id == "stolen-id" {
		t.Errorf("forged cookie must not resolve to its claimed session")
	}
}

// Redis-backed tests need a live server; set TEST_REDIS_ADDR to run them.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis-backed session tests")
	}
	return redis.NewClient(&redis.Options{Addr: addr, DB: 15})
}

func TestResults_SaveLoadClear(t *testing.T) {
	rdb := testRedis(t)
	store := NewStore(rdb, testSecret)
	ctx := context.Background()
	id := "test-session-" + strings.ReplaceAll(t.Name(), "/", "-")

	results := []research.KeywordResult{{Keyword: "vegan cookbook", ProfitabilityScore: 70}}
	if err := store.SaveResults(ctx, id, results); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadResults(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Keyword != "vegan cookbook" {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := store.ClearResults(ctx, id); err != nil {
		t.Fatalf("clear: %v", err)
	}
	empty, err := store.LoadResults(ctx, id)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no results after clear, got %d", len(empty))
	}
}
