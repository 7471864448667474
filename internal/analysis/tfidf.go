package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// english stop words filtered out before vectorization
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"for", "from", "had", "has", "have", "he", "her", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "of", "on", "or",
		"our", "she", "so", "than", "that", "the", "their", "them",
		"then", "there", "these", "they", "this", "to", "was", "we",
		"were", "what", "when", "where", "which", "who", "will", "with",
		"you", "your",
	} {
		stopWords[w] = struct{}{}
	}
}

func tokenize(s string) []string {
	var out []string
	for _, tok := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Vectorizer turns short keyword documents into L2-normalized TF-IDF vectors.
// The vocabulary is capped at maxFeatures terms, most frequent first.
type Vectorizer struct {
	maxFeatures int
	vocab       map[string]int
	terms       []string
	idf         []float64
}

func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 1000
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// FitTransform learns the vocabulary from docs and returns their vectors.
// Rows for documents that contain only stop words are zero vectors.
func (v *Vectorizer) FitTransform(docs []string) [][]float64 {
	docTokens := make([][]string, len(docs))
	docFreq := map[string]int{}
	totalFreq := map[string]int{}
	for i, d := range docs {
		toks := tokenize(d)
		docTokens[i] = toks
		seen := map[string]struct{}{}
		for _, t := range toks {
			totalFreq[t]++
			if _, ok := seen[t]; !ok {
				docFreq[t]++
				seen[t] = struct{}{}
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for t := range docFreq {
		terms = append(terms, t)
	}
	// Most frequent first; ties broken alphabetically so runs are repeatable.
	sort.Slice(terms, func(i, j int) bool {
		if totalFreq[terms[i]] != totalFreq[terms[j]] {
			return totalFreq[terms[i]] > totalFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		// Smoothed IDF so terms present in every document keep weight.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, toks := range docTokens {
		vec := make([]float64, len(terms))
		for _, t := range toks {
			if idx, ok := v.vocab[t]; ok {
				vec[idx]++
			}
		}
		for j := range vec {
			vec[j] *= v.idf[j]
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

// FeatureNames returns the learned vocabulary in index order.
func (v *Vectorizer) FeatureNames() []string {
	return v.terms
}

func normalize(vec []float64) {
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarity computes the TF-IDF cosine similarity of two keywords, 0-1.
func Similarity(a, b string) float64 {
	vecs := NewVectorizer(1000).FitTransform([]string{a, b})
	return math.Round(cosine(vecs[0], vecs[1])*1000) / 1000
}
