package keywords

import "strings"

// Static synonym table oriented at self-publishing niches.
var synonymTable = map[string][]string{
	"book":       {"guide", "handbook", "manual", "volume", "title"},
	"guide":      {"handbook", "manual", "companion", "primer"},
	"beginner":   {"novice", "starter", "newcomer", "first-timer"},
	"advanced":   {"expert", "professional", "master"},
	"learn":      {"study", "master", "understand", "practice"},
	"easy":       {"simple", "effortless", "straightforward", "quick"},
	"recipe":     {"dish", "meal", "cooking"},
	"diet":       {"nutrition", "eating plan", "meal plan"},
	"money":      {"income", "profit", "wealth", "cash"},
	"business":   {"company", "venture", "enterprise", "startup"},
	"fitness":    {"exercise", "workout", "training"},
	"story":      {"tale", "narrative", "fiction"},
	"children":   {"kids", "young readers"},
	"journal":    {"diary", "notebook", "planner", "logbook"},
	"workbook":   {"exercise book", "practice book", "activity book"},
	"tips":       {"advice", "tricks", "secrets", "pointers"},
	"complete":   {"comprehensive", "full", "total", "ultimate"},
	"fast":       {"quick", "rapid", "speedy"},
	"healthy":    {"wholesome", "nutritious"},
	"craft":      {"handmade", "diy", "homemade"},
}

// Synonyms returns known synonyms for a single word, empty when the word is
// not in the table.
func Synonyms(word string) []string {
	syns, ok := synonymTable[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return nil
	}
	out := make([]string, len(syns))
	copy(out, syns)
	return out
}

// ExpandWithSynonyms rewrites a keyword phrase by substituting each word
// with its synonyms one position at a time. The original phrase is always
// included; output is capped at 20 variations.
func ExpandWithSynonyms(keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	words := filteredTokens(keyword)
	if len(words) == 0 {
		return []string{keyword}
	}

	seen := map[string]struct{}{}
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(keyword)
	for i, w := range words {
		for _, syn := range Synonyms(w) {
			replaced := make([]string, len(words))
			copy(replaced, words)
			replaced[i] = syn
			add(strings.Join(replaced, " "))
			if len(out) >= 20 {
				return out
			}
		}
	}
	return out
}
