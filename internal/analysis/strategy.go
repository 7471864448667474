package analysis

import (
	"fmt"
	"strings"
)

// ScoredKeyword is the slice of a research result the strategy engine needs.
type ScoredKeyword struct {
	Keyword       string  `json:"keyword"`
	Difficulty    float64 `json:"difficulty_score"`
	Profitability float64 `json:"profitability_score"`
	ResultsCount  int     `json:"search_results_count"`
}

// Opportunity is a keyword flagged by the strategy engine with the numbers
// that earned it the flag.
type Opportunity struct {
	Keyword       string  `json:"keyword"`
	Difficulty    float64 `json:"difficulty,omitempty"`
	Profitability float64 `json:"profitability,omitempty"`
	WordCount     int     `json:"word_count,omitempty"`
	ResultsCount  int     `json:"search_results,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// Strategy buckets analyzed keywords into actionable groups.
type Strategy struct {
	HighPotential []Opportunity `json:"high_potential_keywords"`
	Avoid         []Opportunity `json:"avoid_keywords"`
	LongTail      []Opportunity `json:"long_tail_opportunities"`
	Niche         []Opportunity `json:"niche_opportunities"`
	Tips          []string      `json:"strategy_tips"`
}

// RecommendStrategy sorts scored keywords into pursue/avoid buckets.
// Thresholds: pursue at profitability >= 70 and difficulty <= 60, avoid at
// difficulty >= 80, long-tail at 3+ words under difficulty 50, niche under
// 1000 competing listings with profitability >= 40.
func RecommendStrategy(results []ScoredKeyword) Strategy {
	s := Strategy{
		HighPotential: []Opportunity{},
		Avoid:         []Opportunity{},
		LongTail:      []Opportunity{},
		Niche:         []Opportunity{},
		Tips:          []string{},
	}

	for _, r := range results {
		wordCount := len(strings.Fields(r.Keyword))
		switch {
		case r.Profitability >= 70 && r.Difficulty <= 60:
			s.HighPotential = append(s.HighPotential, Opportunity{
				Keyword:       r.Keyword,
				Profitability: r.Profitability,
				Difficulty:    r.Difficulty,
			})
		case r.Difficulty >= 80:
			s.Avoid = append(s.Avoid, Opportunity{
				Keyword:    r.Keyword,
				Reason:     "Too competitive",
				Difficulty: r.Difficulty,
			})
		case wordCount >= 3 && r.Difficulty <= 50:
			s.LongTail = append(s.LongTail, Opportunity{
				Keyword:    r.Keyword,
				WordCount:  wordCount,
				Difficulty: r.Difficulty,
			})
		case r.ResultsCount < 1000 && r.Profitability >= 40:
			s.Niche = append(s.Niche, Opportunity{
				Keyword:       r.Keyword,
				ResultsCount:  r.ResultsCount,
				Profitability: r.Profitability,
			})
		}
	}

	if len(s.HighPotential) > 0 {
		s.Tips = append(s.Tips, fmt.Sprintf("Focus on %d high-potential keywords identified", len(s.HighPotential)))
	}
	if len(s.LongTail) > 0 {
		s.Tips = append(s.Tips, fmt.Sprintf("Consider %d long-tail keywords for specific niches", len(s.LongTail)))
	}
	if len(results) > 0 && len(s.Avoid)*2 > len(results) {
		s.Tips = append(s.Tips, "Many keywords are highly competitive - consider more specific, long-tail variations")
	}
	if len(s.Niche) > 0 {
		s.Tips = append(s.Tips, fmt.Sprintf("Explore %d niche opportunities with low competition", len(s.Niche)))
	}
	return s
}
