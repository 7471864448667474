package keywords

import "strings"

// IntentReport classifies what a searcher is likely after.
type IntentReport struct {
	IntentType        string `json:"intent_type"`
	CommercialSignals int    `json:"commercial_signals"`
	UrgencyLevel      string `json:"urgency_level"`
	Specificity       string `json:"specificity"`
	QuestionBased     bool   `json:"question_based"`
}

var commercialWords = []string{"buy", "purchase", "price", "cost", "cheap", "discount", "deal", "sale", "order"}

var questionWords = []string{"how", "what", "why", "when", "where", "who", "which"}

var urgentWords = []string{"now", "today", "immediately", "urgent", "quick", "fast"}

var semiUrgentWords = []string{"soon", "this week", "asap"}

// AnalyzeIntent scores commercial, question, urgency and specificity signals
// in a keyword.
func AnalyzeIntent(keyword string) IntentReport {
	report := IntentReport{
		IntentType:   "informational",
		UrgencyLevel: "low",
		Specificity:  "general",
	}

	lower := strings.ToLower(strings.TrimSpace(keyword))
	if lower == "" {
		return report
	}

	for _, w := range commercialWords {
		if strings.Contains(lower, w) {
			report.CommercialSignals++
		}
	}
	if report.CommercialSignals > 0 {
		report.IntentType = "commercial"
	}

	for _, q := range questionWords {
		if strings.HasPrefix(lower, q) {
			report.QuestionBased = true
			report.IntentType = "informational"
			break
		}
	}

	for _, u := range urgentWords {
		if strings.Contains(lower, u) {
			report.UrgencyLevel = "high"
			break
		}
	}
	if report.UrgencyLevel == "low" {
		for _, u := range semiUrgentWords {
			if strings.Contains(lower, u) {
				report.UrgencyLevel = "medium"
				break
			}
		}
	}

	switch wordCount := len(strings.Fields(lower)); {
	case wordCount >= 4:
		report.Specificity = "highly specific"
	case wordCount == 3:
		report.Specificity = "specific"
	case wordCount == 2:
		report.Specificity = "moderate"
	}
	return report
}

// SemanticGroups buckets keywords into fixed publishing categories by
// trigger words. Keywords matching nothing land in "other". Empty groups
// are omitted.
func SemanticGroups(keywords []string) map[string][]string {
	categories := []struct {
		name  string
		words []string
	}{
		{"how_to", []string{"how to", "guide", "tutorial", "step by step", "instructions", "learn"}},
		{"business", []string{"business", "entrepreneur", "marketing", "sales", "profit", "money", "finance"}},
		{"health", []string{"health", "fitness", "diet", "nutrition", "wellness", "exercise", "weight"}},
		{"technology", []string{"technology", "software", "programming", "computer", "digital", "tech"}},
		{"cooking", []string{"cooking", "recipe", "food", "kitchen", "meal", "chef", "cookbook"}},
		{"self_help", []string{"self help", "motivation", "success", "confidence", "mindset", "personal"}},
		{"romance", []string{"romance", "love", "relationship", "dating", "marriage"}},
		{"children", []string{"children", "kids", "child", "parenting", "family"}},
		{"education", []string{"education", "learning", "study", "school", "teaching", "academic"}},
		{"fiction", []string{"fiction", "novel", "story", "fantasy", "mystery", "thriller"}},
	}

	groups := map[string][]string{}
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		matched := false
		for _, cat := range categories {
			for _, trigger := range cat.words {
				if strings.Contains(lower, trigger) {
					groups[cat.name] = append(groups[cat.name], kw)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			groups["other"] = append(groups["other"], kw)
		}
	}
	return groups
}
