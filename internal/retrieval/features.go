package retrieval

import (
	"strings"
	"unicode/utf8"
)

// Vocabulary is the fixed list of insurance terms counted in every feature
// vector. Order matters: it defines the vector layout.
var Vocabulary = [...]string{
	"coverage", "premium", "policy", "claim", "benefit", "deductible",
	"surgery", "treatment", "medical", "hospital", "doctor", "patient",
	"age", "year", "month", "amount", "rupees", "rs", "cost", "fee",
}

// FeatureDims is the length of a feature vector: one count per vocabulary
// term followed by rune length and word count.
const FeatureDims = len(Vocabulary) + 2

// Features computes the keyword-count vector of text. Terms are counted as
// case-insensitive, non-overlapping substrings, so "rs" also counts inside
// "years".
func Features(text string) []float64 {
	lower := strings.ToLower(text)
	vec := make([]float64, FeatureDims)
	for i, term := range Vocabulary {
		vec[i] = float64(strings.Count(lower, term))
	}
	vec[len(Vocabulary)] = float64(utf8.RuneCountInString(text))
	vec[len(Vocabulary)+1] = float64(len(strings.Fields(text)))
	return vec
}

// Dot returns the dot product of two vectors over their common length.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
