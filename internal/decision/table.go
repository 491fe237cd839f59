package decision

import (
	"strings"

	"github.com/ziadkadry99/claimdesk/internal/config"
)

// Rules are the numeric thresholds the engine applies.
type Rules struct {
	MinPolicyDurationMonths float64 `json:"min_policy_duration_months"`
	MaxAgeStandard          int     `json:"max_age_standard"`
	MaxAgePremium           int     `json:"max_age_premium"`
	BaseCoverageAmount      float64 `json:"base_coverage_amount"`
	PremiumMultiplier       float64 `json:"premium_multiplier"`
	AgePenaltyFactor        float64 `json:"age_penalty_factor"`
}

// Procedure is one entry of the procedure table.
type Procedure struct {
	Name       string  `json:"name"`
	Covered    bool    `json:"covered"`
	Category   string  `json:"category"`
	BaseAmount float64 `json:"base_amount"`
}

// Table is the immutable rule set shared by every evaluation. Build it once
// with NewTable; accessors return copies.
type Table struct {
	rules      Rules
	procedures []Procedure
	index      map[string]int
}

// NewTable builds a Table from configuration. Procedure order is preserved
// and later duplicates of a name are ignored.
func NewTable(rules config.RulesConfig, procedures []config.ProcedureConfig) *Table {
	t := &Table{
		rules: Rules{
			MinPolicyDurationMonths: rules.MinPolicyDurationMonths,
			MaxAgeStandard:          rules.MaxAgeStandard,
			MaxAgePremium:           rules.MaxAgePremium,
			BaseCoverageAmount:      rules.BaseCoverageAmount,
			PremiumMultiplier:       rules.PremiumMultiplier,
			AgePenaltyFactor:        rules.AgePenaltyFactor,
		},
		index: make(map[string]int, len(procedures)),
	}
	for _, p := range procedures {
		key := strings.ToLower(p.Name)
		if _, dup := t.index[key]; dup || key == "" {
			continue
		}
		t.index[key] = len(t.procedures)
		t.procedures = append(t.procedures, Procedure{
			Name:       p.Name,
			Covered:    p.Covered,
			Category:   p.Category,
			BaseAmount: p.BaseAmount,
		})
	}
	return t
}

// DefaultTable builds a Table from the built-in rules and procedures.
func DefaultTable() *Table {
	cfg := config.DefaultConfig()
	return NewTable(cfg.Rules, cfg.Procedures)
}

// Rules returns the decision thresholds.
func (t *Table) Rules() Rules {
	return t.rules
}

// Procedures returns the procedure table in scan order.
func (t *Table) Procedures() []Procedure {
	out := make([]Procedure, len(t.procedures))
	copy(out, t.procedures)
	return out
}

// ProcedureNames returns procedure names in scan order.
func (t *Table) ProcedureNames() []string {
	names := make([]string, len(t.procedures))
	for i, p := range t.procedures {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a procedure by name, ignoring case.
func (t *Table) Lookup(name string) (Procedure, bool) {
	i, ok := t.index[strings.ToLower(name)]
	if !ok {
		return Procedure{}, false
	}
	return t.procedures[i], true
}
