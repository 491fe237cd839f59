package justify

import (
	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/extract"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// Confidence weights.
const (
	CompletenessWeight = 0.3
	RelevanceWeight    = 0.4
	ClarityWeight      = 0.3

	// NoFactorClarity is the clarity used when no rule fired.
	NoFactorClarity = 0.1

	requiredFields = 3
)

// ConfidenceScore estimates how much structured signal backed a decision.
// It combines field completeness, mean match similarity and the number of
// decision factors; every component and the total lie in [0,1].
func ConfidenceScore(parsed extract.ParsedQuery, matches []retrieval.Match, res decision.Result) float64 {
	completeness := clamp01(float64(parsed.CompletedFields()) / requiredFields)

	var relevance float64
	if len(matches) > 0 {
		var sum float64
		for _, m := range matches {
			sum += m.Similarity
		}
		relevance = clamp01(sum / float64(len(matches)))
	}

	clarity := NoFactorClarity
	if n := len(res.Factors); n > 0 {
		clarity = clamp01(float64(n) / 3)
	}

	return clamp01(CompletenessWeight*completeness + RelevanceWeight*relevance + ClarityWeight*clarity)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
