package keywords

import (
	"fmt"
	"strings"
)

var longTailPrefixes = []string{"how to", "best", "complete guide to", "beginner", "advanced", "ultimate"}

var longTailSuffixes = []string{"book", "guide", "handbook", "manual", "course", "tutorial", "for beginners", "step by step"}

var phraseModifierPrefixes = []string{"best", "top", "ultimate", "complete", "beginner", "advanced", "how to", "guide to"}

var phraseModifierSuffixes = []string{"guide", "book", "manual", "handbook", "tutorial", "course", "tips", "secrets"}

var questionStarters = []string{"how to", "what is", "why is", "when to", "where to"}

// bookTemplates generate publishing-oriented long-tail phrases.
var bookTemplates = []string{
	"how to %s",
	"best %s book",
	"%s for beginners",
	"%s step by step",
	"complete guide to %s",
	"%s made easy",
	"learn %s",
	"%s secrets",
	"%s tips and tricks",
	"ultimate %s guide",
	"%s handbook",
	"%s mastery",
	"beginner's guide to %s",
	"%s for dummies",
	"advanced %s techniques",
}

var genericTemplates = []string{
	"how to %s",
	"best %s",
	"%s guide",
	"%s tips",
	"%s tutorial",
	"%s course",
	"learn %s",
	"%s training",
}

var questionTemplates = []string{
	"what is %s",
	"how does %s work",
	"why use %s",
	"when to use %s",
	"where to learn %s",
}

// LongTailVariations builds prefix/suffix combinations of a seed keyword,
// capped at 15.
func LongTailVariations(keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	var out []string
	for _, p := range longTailPrefixes {
		out = append(out, p+" "+keyword)
	}
	for _, s := range longTailSuffixes {
		out = append(out, keyword+" "+s)
	}
	for _, p := range longTailPrefixes[:3] {
		for _, s := range longTailSuffixes[:3] {
			out = append(out, p+" "+keyword+" "+s)
		}
	}
	return capSlice(out, 15)
}

// PhraseVariations builds reorderings, modifier forms and question forms of
// a keyword, capped at 25. The seed itself is always first.
func PhraseVariations(keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
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

	words := strings.Fields(keyword)
	if len(words) > 1 {
		reversed := make([]string, len(words))
		for i, w := range words {
			reversed[len(words)-1-i] = w
		}
		add(strings.Join(reversed, " "))
		if len(words) >= 3 {
			add(words[len(words)-1] + " " + strings.Join(words[:len(words)-1], " "))
			add(words[1] + " " + words[0] + " " + strings.Join(words[2:], " "))
		}
	}

	lower := strings.ToLower(keyword)
	for _, p := range phraseModifierPrefixes {
		if !strings.HasPrefix(lower, p) {
			add(p + " " + keyword)
		}
	}
	for _, s := range phraseModifierSuffixes {
		add(keyword + " " + s)
	}
	for _, q := range questionStarters {
		if !strings.HasPrefix(strings.ToLower(keyword), q) {
			add(q + " " + keyword)
		}
	}
	return capSlice(out, 25)
}

// TemplateVariations expands a base keyword through context-specific
// templates plus question forms, capped at 20. Context "books" uses the
// publishing template set; anything else falls back to the generic set.
func TemplateVariations(base, context string) []string {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil
	}
	templates := genericTemplates
	if strings.EqualFold(context, "books") || context == "" {
		templates = bookTemplates
	}
	var out []string
	for _, tpl := range templates {
		out = append(out, fmt.Sprintf(tpl, base))
	}
	for _, tpl := range questionTemplates {
		out = append(out, fmt.Sprintf(tpl, base))
	}
	return capSlice(out, 20)
}
