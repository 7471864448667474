package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/julisunkan/Ktrend/internal/research"
)

const (
	CookieName    = "ktrend_session"
	cookieTTL     = 7 * 24 * time.Hour
	resultsTTL    = 24 * time.Hour
	resultsKeyFmt = "research:%s"
)

// Store ties the browser session cookie to the current research results
// held in redis. The cookie is a signed JWT carrying only a random
// session id; the payload itself never leaves the server.
type Store struct {
	rdb    *redis.Client
	secret string
}

func NewStore(rdb *redis.Client, secret string) *Store {
	return &Store{rdb: rdb, secret: secret}
}

// Current returns the session id for this request, minting a fresh one
// (and setting the cookie) when the cookie is absent, expired or
// tampered with.
func (s *Store) Current(c *gin.Context) string {
	if tokenStr, err := c.Cookie(CookieName); err == nil {
		if claims, err := ParseToken(s.secret, tokenStr); err == nil {
			return claims.SessionID
		}
	}

	id := uuid.NewString()
	token, err := GenerateToken(s.secret, id, cookieTTL)
	if err != nil {
		// Signing only fails on a broken secret; fall back to a
		// cookieless one-shot session.
		return id
	}
	c.SetCookie(CookieName, token, int(cookieTTL.Seconds()), "/", "", false, true)
	return id
}

func resultsKey(sessionID string) string {
	return fmt.Sprintf(resultsKeyFmt, sessionID)
}

func (s *Store) SaveResults(ctx context.Context, sessionID string, results []research.KeywordResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, resultsKey(sessionID), payload, resultsTTL).Err()
}

// LoadResults returns the current results, or an empty slice when the
// session has none.
func (s *Store) LoadResults(ctx context.Context, sessionID string) ([]research.KeywordResult, error) {
	raw, err := s.rdb.Get(ctx, resultsKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []research.KeywordResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	var results []research.KeywordResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) ClearResults(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, resultsKey(sessionID)).Err()
}
