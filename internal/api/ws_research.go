package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/julisunkan/Ktrend/internal/research"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadJSON(v interface{}) error {
	return s.conn.ReadJSON(v)
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

type wsResearchRequest struct {
	Keywords []string `json:"keywords"`
}

type wsResearchFrame struct {
	Keyword string      `json:"keyword"`
	Status  string      `json:"status"`
	Result  interface{} `json:"result,omitempty"`
}

// GET /ws/research streams per-keyword progress: one "running" and one
// "done" frame per keyword, then a summary frame with the whole batch.
func WSResearchHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			svc.Logger.WithError(err).Warn("[API] websocket upgrade failed")
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		var req wsResearchRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		var keywords []string
		for _, kw := range req.Keywords {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
		if len(keywords) == 0 {
			conn.WriteJSON(gin.H{"error": "No keywords provided"})
			return
		}

		ctx := c.Request.Context()
		results := make([]research.KeywordResult, 0, len(keywords))
		for _, kw := range keywords {
			if ctx.Err() != nil {
				return
			}
			if err := conn.WriteJSON(wsResearchFrame{Keyword: kw, Status: "running"}); err != nil {
				return
			}
			result := svc.Research.ResearchKeyword(ctx, kw)
			results = append(results, result)
			if err := conn.WriteJSON(wsResearchFrame{Keyword: kw, Status: "done", Result: result}); err != nil {
				return
			}
		}

		saved, err := saveResearchSession(results)
		summary := gin.H{
			"status":  "complete",
			"count":   len(results),
			"results": results,
		}
		if err != nil {
			svc.Logger.WithError(err).Error("[API] save websocket session")
		} else {
			summary["session_id"] = saved.ID
		}
		conn.WriteJSON(summary)
	}
}
