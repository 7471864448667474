package keywords

import (
	"regexp"
	"sort"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-z0-9']+`)

var ngramStopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on", "or",
		"that", "the", "this", "to", "was", "were", "will", "with",
	} {
		ngramStopWords[w] = struct{}{}
	}
}

func filteredTokens(text string) []string {
	var out []string
	for _, tok := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, stop := ngramStopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Ngrams returns the n-grams of text after stop-word filtering. Texts
// shorter than n tokens yield nothing.
func Ngrams(text string, n int) []string {
	if n < 1 {
		return nil
	}
	tokens := filteredTokens(text)
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// KeyPhrases extracts the most frequent bigrams and trigrams from text,
// most frequent first, capped at max.
func KeyPhrases(text string, max int) []string {
	if max <= 0 {
		max = 10
	}
	counts := map[string]int{}
	for _, phrase := range append(Ngrams(text, 2), Ngrams(text, 3)...) {
		if len(phrase) > 3 {
			counts[phrase]++
		}
	}

	type pc struct {
		phrase string
		count  int
	}
	var all []pc
	for p, c := range counts {
		all = append(all, pc{p, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].phrase < all[j].phrase
	})
	if len(all) > max {
		all = all[:max]
	}
	out := make([]string, len(all))
	for i, x := range all {
		out[i] = x.phrase
	}
	return out
}
