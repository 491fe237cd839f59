// Package extract turns free-text claim queries into structured fields using
// a fixed set of regular expressions. Extraction never fails: a field whose
// pattern does not match is left nil.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenericProcedure is the procedure key used when only a generic term
// such as "operation" appears in the query.
const GenericProcedure = "surgery"

var genericProcedureTerms = []string{"surgery", "operation", "procedure", "treatment"}

// Age patterns in priority order; the first match wins.
var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)[- ]?(?:years?|yrs?|y)[- ]?old`),
	regexp.MustCompile(`(?i)(\d+)[- ]?(?:male|female|m|f)\b`),
	regexp.MustCompile(`(?i)(\d+)y`),
}

// The gender token must stand alone so that words like "month" or "from"
// are not read as M/F.
var genderPattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(male|female|m|f)(?:[^a-z]|$)`)

var locationPattern = regexp.MustCompile(`(?:^|\s)[Ii]n\s+([A-Z][A-Za-z]+)`)

type durationPattern struct {
	re       *regexp.Regexp
	unit     string
	toMonths func(n int) float64
}

// Duration patterns in priority order: months, years, days. Each accepts
// "N <unit> old|policy" and "policy [is|of] N <unit>". Years additionally
// require the word policy so that "46-year-old" is never read as a policy age.
var durationPatterns = []durationPattern{
	{
		re:       regexp.MustCompile(`(?i)(?:(\d+)[- ]?(?:months?|mons?)\b[- ]?(?:old|policy)|\bpolicy\s+(?:is\s+|of\s+)?(\d+)[- ]?(?:months?|mons?)\b)`),
		unit:     UnitMonths,
		toMonths: func(n int) float64 { return float64(n) },
	},
	{
		re:       regexp.MustCompile(`(?i)(?:(\d+)[- ]?(?:years?|yrs?)\b[- ]?(?:old[- ]?)?policy|\bpolicy\s+(?:is\s+|of\s+)?(\d+)[- ]?(?:years?|yrs?)\b)`),
		unit:     UnitYears,
		toMonths: func(n int) float64 { return float64(n) * 12 },
	},
	{
		re:       regexp.MustCompile(`(?i)(?:(\d+)[- ]?(?:days?|d)\b[- ]?(?:old|policy)|\bpolicy\s+(?:is\s+|of\s+)?(\d+)[- ]?(?:days?|d)\b)`),
		unit:     UnitDays,
		toMonths: func(n int) float64 { return float64(n) / 30 },
	},
}

// Parser extracts fields from claim queries. It is immutable and safe for
// concurrent use.
type Parser struct {
	procedures []string
	title      cases.Caser
}

// NewParser creates a Parser that recognises the given procedure names,
// scanned in the order given.
func NewParser(procedures []string) *Parser {
	names := make([]string, len(procedures))
	copy(names, procedures)
	return &Parser{
		procedures: names,
		title:      cases.Title(language.Und),
	}
}

// Parse extracts every recognised field from query.
func (p *Parser) Parse(query string) ParsedQuery {
	parsed := ParsedQuery{RawQuery: query}

	parsed.Age = parseAge(query)
	parsed.Gender = parseGender(query)
	parsed.Procedure = p.parseProcedure(query)

	if m := locationPattern.FindStringSubmatch(query); m != nil {
		loc := p.title.String(m[1])
		parsed.Location = &loc
	}

	for _, dp := range durationPatterns {
		m := dp.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		months := dp.toMonths(n)
		parsed.PolicyDurationMonths = &months
		parsed.PolicyDurationValue = &n
		parsed.PolicyDurationUnit = dp.unit
		break
	}

	return parsed
}

func parseAge(query string) *int {
	for _, re := range agePatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &age
	}
	return nil
}

func parseGender(query string) *Gender {
	m := genderPattern.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	g := GenderFemale
	switch strings.ToLower(m[1]) {
	case "m", "male":
		g = GenderMale
	}
	return &g
}

func (p *Parser) parseProcedure(query string) *string {
	lower := strings.ToLower(query)
	for _, name := range p.procedures {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			proc := name
			return &proc
		}
	}
	for _, term := range genericProcedureTerms {
		if strings.Contains(lower, term) {
			proc := GenericProcedure
			return &proc
		}
	}
	return nil
}
