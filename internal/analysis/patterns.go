package analysis

import (
	"sort"
	"strings"
)

// PatternReport summarizes structural traits of a keyword list.
type PatternReport struct {
	AverageLength         float64        `json:"average_length"`
	LongTailPercentage    float64        `json:"long_tail_percentage"`
	QuestionKeywords      []string       `json:"question_keywords"`
	ActionKeywords        []string       `json:"action_keywords"`
	CommonWords           map[string]int `json:"common_words"`
	WordCountDistribution map[int]int    `json:"word_count_distribution"`
}

var questionStarters = []string{"how", "what", "why", "when", "where", "who", "which"}

var actionWords = []string{"buy", "get", "find", "learn", "make", "create", "build", "start"}

// AnalyzePatterns inspects keyword structure: phrase length, long-tail
// share, question and action phrasing, and recurring words.
func AnalyzePatterns(keywords []string) PatternReport {
	report := PatternReport{
		QuestionKeywords:      []string{},
		ActionKeywords:        []string{},
		CommonWords:           map[string]int{},
		WordCountDistribution: map[int]int{},
	}
	if len(keywords) == 0 {
		return report
	}

	var totalWords, longTail int
	wordFreq := map[string]int{}
	for _, kw := range keywords {
		words := strings.Fields(kw)
		totalWords += len(words)
		if len(words) >= 3 {
			longTail++
		}
		report.WordCountDistribution[len(words)]++

		lower := strings.ToLower(kw)
		for _, q := range questionStarters {
			if strings.HasPrefix(lower, q) {
				report.QuestionKeywords = append(report.QuestionKeywords, kw)
				break
			}
		}
		for _, a := range actionWords {
			if strings.Contains(lower, a) {
				report.ActionKeywords = append(report.ActionKeywords, kw)
				break
			}
		}
		for _, w := range tokenRe.FindAllString(lower, -1) {
			if len(w) > 2 {
				wordFreq[w]++
			}
		}
	}

	report.AverageLength = round2(float64(totalWords) / float64(len(keywords)))
	report.LongTailPercentage = round2(float64(longTail) / float64(len(keywords)) * 100)
	report.CommonWords = topWords(wordFreq, 10)
	return report
}

func topWords(freq map[string]int, n int) map[string]int {
	type wc struct {
		word  string
		count int
	}
	var all []wc
	for w, c := range freq {
		all = append(all, wc{w, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].word < all[j].word
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make(map[string]int, len(all))
	for _, x := range all {
		out[x.word] = x.count
	}
	return out
}

// MeanOf averages a series, zero on empty input.
func MeanOf(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
