// Package justify renders decision results as user-facing text and scores
// how much structured signal a decision was based on.
package justify

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/extract"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// MaxReferencedDocuments is how many matches are listed in a justification.
const MaxReferencedDocuments = 3

// MaxExcerptLength bounds the content of a referenced clause, in runes,
// including the trailing ellipsis.
const MaxExcerptLength = 300

const ellipsis = "..."

var title = cases.Title(language.Und)

// Clause is a policy excerpt cited in a response.
type Clause struct {
	Document       string  `json:"document"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
	ChunkIndex     int     `json:"chunk_index"`
}

// Justification renders the decision banner, numbered factors, the fields
// that were extracted and the top referenced documents.
func Justification(res decision.Result, parsed extract.ParsedQuery, matches []retrieval.Match) string {
	if res.Decision == decision.Error {
		return ErrorJustification(res.Err)
	}

	var lines []string

	switch res.Decision {
	case decision.Approved:
		lines = append(lines, "✅ Claim APPROVED for amount: Rs. "+FormatAmount(res.Amount))
	case decision.Rejected:
		lines = append(lines, "❌ Claim REJECTED")
	default:
		lines = append(lines, "⚠️ Claim requires manual review")
	}

	if len(res.Factors) > 0 {
		lines = append(lines, "\n📋 Decision Factors:")
		for i, f := range res.Factors {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, f))
		}
	}

	if fields := extractedFields(parsed); len(fields) > 0 {
		lines = append(lines, "\n📝 Extracted Information:")
		lines = append(lines, fields...)
	}

	if len(matches) > 0 {
		lines = append(lines, fmt.Sprintf("\n📄 Referenced Documents (%d):", len(matches)))
		for i, m := range matches {
			if i == MaxReferencedDocuments {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s (relevance: %.2f)", i+1, m.Document, m.Similarity))
		}
	}

	return strings.Join(lines, "\n")
}

// ErrorJustification is the justification for a query that failed.
func ErrorJustification(msg string) string {
	return "Error processing query: " + msg
}

func extractedFields(p extract.ParsedQuery) []string {
	var out []string
	if p.Age != nil {
		out = append(out, fmt.Sprintf("• Age: %d years", *p.Age))
	}
	if p.Gender != nil {
		out = append(out, "• Gender: "+title.String(string(*p.Gender)))
	}
	if p.Procedure != nil {
		out = append(out, "• Procedure: "+title.String(*p.Procedure))
	}
	if p.Location != nil {
		out = append(out, "• Location: "+*p.Location)
	}
	if p.PolicyDurationMonths != nil {
		out = append(out, "• Policy Duration: "+formatDuration(p))
	}
	return out
}

func formatDuration(p extract.ParsedQuery) string {
	if p.PolicyDurationValue != nil && p.PolicyDurationUnit != "" {
		return fmt.Sprintf("%d %s", *p.PolicyDurationValue, p.PolicyDurationUnit)
	}
	return strconv.FormatFloat(*p.PolicyDurationMonths, 'f', -1, 64) + " " + extract.UnitMonths
}

// FormatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 75,000.00.
func FormatAmount(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

// ReferencedClauses converts matches into cited clauses, truncating long
// chunk text.
func ReferencedClauses(matches []retrieval.Match) []Clause {
	out := make([]Clause, 0, len(matches))
	for _, m := range matches {
		out = append(out, Clause{
			Document:       m.Document,
			Content:        Excerpt(m.Text),
			RelevanceScore: m.Similarity,
			ChunkIndex:     m.ChunkIndex,
		})
	}
	return out
}

// Excerpt shortens text to at most MaxExcerptLength runes.
func Excerpt(text string) string {
	if utf8.RuneCountInString(text) <= MaxExcerptLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxExcerptLength-len(ellipsis)]) + ellipsis
}
