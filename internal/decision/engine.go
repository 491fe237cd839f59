// Package decision evaluates parsed claims against the rule table and the
// policy chunks retrieved for them.
package decision

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/claimdesk/internal/extract"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// Decision is the outcome of an evaluation.
type Decision string

const (
	Approved       Decision = "approved"
	Rejected       Decision = "rejected"
	RequiresReview Decision = "requires_review"
	Error          Decision = "error"
)

// Result is the engine's verdict. Factors are in the order the rules fired.
type Result struct {
	Decision Decision `json:"decision"`
	Amount   float64  `json:"amount"`
	Factors  []string `json:"factors"`
	Err      string   `json:"error,omitempty"`
}

var chunkCoverageRe = regexp.MustCompile(`coverage[^:]*:\s*(?:rs\.?\s*)?(\d+(?:,\d+)*)`)

// Engine applies a Table to parsed queries. It holds no per-request state.
type Engine struct {
	table *Table
	title cases.Caser
}

// NewEngine creates an Engine over table.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table, title: cases.Title(language.Und)}
}

// Table returns the rule table the engine evaluates against.
func (e *Engine) Table() *Table {
	return e.table
}

// Evaluate runs the rules in order: policy duration, age, procedure, then
// per-chunk exclusions and coverage overrides. A rejection is never undone.
// A panic during evaluation is reported as an Error result.
func (e *Engine) Evaluate(parsed extract.ParsedQuery, matches []retrieval.Match) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Decision: Error,
				Amount:   0,
				Factors:  []string{},
				Err:      fmt.Sprint(r),
			}
		}
	}()

	rules := e.table.rules
	res = Result{
		Decision: Approved,
		Amount:   rules.BaseCoverageAmount,
		Factors:  []string{},
	}

	if d := parsed.PolicyDurationMonths; d != nil && *d < rules.MinPolicyDurationMonths {
		res.reject(fmt.Sprintf("Policy duration (%s months) is less than minimum required (%s months)",
			formatNumber(*d), formatNumber(rules.MinPolicyDurationMonths)))
	}

	if parsed.Age != nil && res.Decision == Approved {
		age := *parsed.Age
		switch {
		case age > rules.MaxAgePremium:
			res.reject(fmt.Sprintf("Age (%d) exceeds maximum coverage age (%d)", age, rules.MaxAgePremium))
		case age > rules.MaxAgeStandard:
			res.Amount *= rules.AgePenaltyFactor
			res.Factors = append(res.Factors, fmt.Sprintf("Age penalty applied for age %d", age))
		}
	}

	if parsed.Procedure != nil && res.Decision == Approved {
		if proc, ok := e.table.Lookup(*parsed.Procedure); ok {
			name := e.title.String(*parsed.Procedure)
			if proc.Covered {
				res.Amount = proc.BaseAmount
				res.Factors = append(res.Factors, fmt.Sprintf("%s surgery is covered under %s category", name, proc.Category))
			} else {
				res.reject(fmt.Sprintf("%s is not covered under policy", name))
			}
		}
	}

	for _, m := range matches {
		text := strings.ToLower(m.Text)

		if strings.Contains(text, "exclusion") || strings.Contains(text, "not covered") {
			if parsed.Procedure != nil && strings.Contains(text, strings.ToLower(*parsed.Procedure)) {
				res.reject("Procedure found in exclusions: " + m.Document)
				break
			}
		}

		if res.Decision != Approved {
			continue
		}
		if cm := chunkCoverageRe.FindStringSubmatch(text); cm != nil {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(cm[1], ",", ""), 64)
			if err == nil && amount > res.Amount {
				res.Amount = amount
				res.Factors = append(res.Factors, "Coverage amount updated based on policy document: "+m.Document)
			}
		}
	}

	return res
}

func (r *Result) reject(factor string) {
	r.Decision = Rejected
	r.Amount = 0
	r.Factors = append(r.Factors, factor)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
