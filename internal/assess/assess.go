// Package assess provides an advisory claim estimate from a broader rule set
// than the decision engine: procedure synonyms, age bands, city cost
// multipliers and context adjustments. Its verdict is informational; the
// decision engine's result is the one returned to claimants.
package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/claimdesk/internal/extract"
)

const (
	baseAmount    = 100000.0
	minimumAmount = 25000.0
	roundingUnit  = 1000.0

	// Method identifies this rule set in responses.
	Method = "intelligent_rule_based"
)

type procedureGroup struct {
	name     string
	keywords []string
	amount   float64
}

// Scanned in order; the first group with a keyword in the query wins.
var procedureGroups = []procedureGroup{
	{"knee", []string{"knee", "joint", "arthroscopy", "meniscus", "ligament"}, 150000},
	{"heart", []string{"heart", "cardiac", "bypass", "angioplasty", "stent", "valve"}, 500000},
	{"cancer", []string{"cancer", "tumor", "oncology", "chemotherapy", "radiation", "malignant"}, 800000},
	{"eye", []string{"eye", "cataract", "glaucoma", "retina", "cornea"}, 75000},
	{"brain", []string{"brain", "neurosurgery", "stroke", "aneurysm"}, 1000000},
	{"spine", []string{"spine", "spinal", "disc", "vertebra"}, 300000},
	{"surgery", []string{"surgery", "operation", "procedure", "treatment"}, 100000},
}

var cityMultipliers = map[string]float64{
	"mumbai":    1.2,
	"delhi":     1.15,
	"bangalore": 1.1,
	"chennai":   1.1,
	"pune":      1.05,
	"hyderabad": 1.05,
	"kolkata":   1.0,
	"ahmedabad": 0.95,
}

// ModelInfo describes the assessor backing the advisory estimate.
type ModelInfo struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	Device    string `json:"device"`
	Status    string `json:"status"`
}

// ExtractedInfo lists what the assessor recognised in the query.
type ExtractedInfo struct {
	Age                  *int     `json:"age"`
	Procedure            *string  `json:"procedure"`
	Location             *string  `json:"location"`
	PolicyDurationMonths *float64 `json:"policy_duration_months"`
}

// Assessment is the advisory estimate for one query.
type Assessment struct {
	Decision      string        `json:"decision"`
	Amount        float64       `json:"amount"`
	Justification string        `json:"justification"`
	Factors       []string      `json:"factors"`
	ExtractedInfo ExtractedInfo `json:"extracted_info"`
	Method        string        `json:"processing_method"`
}

// Assessor computes advisory estimates. It is safe for concurrent use.
type Assessor struct {
	parser *extract.Parser
	title  cases.Caser
}

// New creates an Assessor.
func New() *Assessor {
	return &Assessor{
		parser: extract.NewParser(nil),
		title:  cases.Title(language.Und),
	}
}

// ModelInfo reports the assessor backend.
func (a *Assessor) ModelInfo() ModelInfo {
	return ModelInfo{Provider: "fallback", ModelName: "rule-based", Device: "cpu", Status: "active"}
}

// Assess estimates a claim from the query text and optional supporting
// context such as retrieved policy text.
func (a *Assessor) Assess(query, context string) Assessment {
	parsed := a.parser.Parse(query)
	res := Assessment{
		Decision: "approved",
		Amount:   baseAmount,
		Factors:  []string{},
		Method:   Method,
		ExtractedInfo: ExtractedInfo{
			Age:                  parsed.Age,
			Location:             parsed.Location,
			PolicyDurationMonths: parsed.PolicyDurationMonths,
		},
	}
	add := func(format string, args ...any) {
		res.Factors = append(res.Factors, fmt.Sprintf(format, args...))
	}

	if age := parsed.Age; age != nil {
		add("Patient age: %d years", *age)
		switch {
		case *age < 18:
			res.Amount *= 0.9
			add("Minor patient - special considerations applied")
		case *age > 75:
			res.Amount *= 0.7
			add("Senior citizen (75+) - reduced coverage")
		case *age > 65:
			res.Amount *= 0.8
			add("Senior citizen - age factor applied")
		case *age > 50:
			res.Amount *= 0.9
			add("Middle-aged patient - slight adjustment")
		}
	}

	if group, ok := matchProcedure(query); ok {
		name := group.name
		res.ExtractedInfo.Procedure = &name
		res.Amount = group.amount
		add("%s surgery approved - specialized coverage", a.title.String(name))

		age := parsed.Age
		switch {
		case name == "cancer" && age != nil && *age > 60:
			res.Amount *= 1.2
			add("Cancer treatment for senior - premium coverage")
		case name == "heart" && age != nil && *age > 55:
			res.Amount *= 1.1
			add("Cardiac procedure for senior - enhanced coverage")
		}
	}

	if d := parsed.PolicyDurationMonths; d != nil {
		add("Policy duration: %.1f months", *d)
		switch {
		case *d < 6:
			res.Decision = "rejected"
			res.Amount = 0
			add("Policy duration insufficient (minimum 6 months required)")
		case *d < 12:
			res.Amount *= 0.8
			add("Partial coverage - policy duration less than 1 year")
		case *d >= 24:
			res.Amount *= 1.1
			add("Premium coverage - long-term policy holder")
		}
	}

	if loc := parsed.Location; loc != nil {
		if m, ok := cityMultipliers[strings.ToLower(*loc)]; ok {
			res.Amount *= m
			add("Location-based adjustment for %s (factor: %g)", *loc, m)
		}
	}

	if context != "" {
		lower := strings.ToLower(context)
		if strings.Contains(lower, "emergency") {
			res.Amount *= 1.15
			add("Emergency procedure - priority coverage")
		}
		if strings.Contains(lower, "specialist") || strings.Contains(lower, "consultant") {
			res.Amount *= 1.1
			add("Specialist consultation - enhanced coverage")
		}
		if strings.Contains(lower, "complications") {
			res.Amount *= 1.2
			add("Complications considered - extended coverage")
		}
	}

	lines := res.Factors
	if res.Decision == "approved" && res.Amount > 0 {
		if res.Amount < minimumAmount {
			res.Amount = minimumAmount
			add("Minimum coverage threshold applied")
		}
		res.Amount = math.RoundToEven(res.Amount/roundingUnit) * roundingUnit
		lines = append([]string{"✅ APPROVED: Coverage amount Rs. " + humanize.Comma(int64(res.Amount))}, res.Factors...)
	} else if res.Decision == "rejected" {
		lines = append([]string{"❌ REJECTED"}, res.Factors...)
	}
	res.Justification = strings.Join(lines, "\n")
	return res
}

func matchProcedure(query string) (procedureGroup, bool) {
	lower := strings.ToLower(query)
	for _, g := range procedureGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g, true
			}
		}
	}
	return procedureGroup{}, false
}
