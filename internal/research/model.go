package research

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/julisunkan/Ktrend/internal/marketplace"
	"github.com/julisunkan/Ktrend/internal/trends"
)

// ResearchSession is one saved research run: a name plus the full result
// payload as a JSON blob, so old runs can be reloaded without re-scraping.
type ResearchSession struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"session_name" gorm:"size:200;not null"`
	Data      datatypes.JSON `json:"-" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type FavoriteKeyword struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Keyword   string    `json:"keyword" gorm:"uniqueIndex;size:200;not null"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// KeywordResult is the full analysis for one seed keyword.
type KeywordResult struct {
	Keyword            string                 `json:"keyword"`
	Expanded           []string               `json:"expanded_keywords"`
	Trends             trends.Data            `json:"trends"`
	Market             marketplace.MarketData `json:"amazon"`
	DifficultyScore    float64                `json:"difficulty_score"`
	ProfitabilityScore float64                `json:"profitability_score"`
	ScoreColor         string                 `json:"score_color"`
}

// NewSession builds an unsaved session carrying the given results under a
// timestamped name.
func NewSession(results []KeywordResult) (*ResearchSession, error) {
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return &ResearchSession{
		Name: fmt.Sprintf("Research %s", time.Now().Format("2006-01-02 15:04")),
		Data: payload,
	}, nil
}

// Results unmarshals the session's stored payload.
func (s *ResearchSession) Results() ([]KeywordResult, error) {
	var results []KeywordResult
	if len(s.Data) == 0 {
		return results, nil
	}
	if err := json.Unmarshal(s.Data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Keywords returns the seed keyword of every result in the session.
func Keywords(results []KeywordResult) []string {
	keywords := make([]string, 0, len(results))
	for _, r := range results {
		keywords = append(keywords, r.Keyword)
	}
	return keywords
}
