package extract

// Gender is the normalised gender of the claimant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Duration units retained for display. Rule evaluation only ever sees months.
const (
	UnitMonths = "months"
	UnitYears  = "years"
	UnitDays   = "days"
)

// ParsedQuery holds the fields extracted from one query. A nil field means
// no pattern matched, which is not the same as a zero value.
type ParsedQuery struct {
	Age                  *int     `json:"age"`
	Gender               *Gender  `json:"gender"`
	Procedure            *string  `json:"procedure"`
	Location             *string  `json:"location"`
	PolicyDurationMonths *float64 `json:"policy_duration_months"`
	PolicyDurationValue  *int     `json:"policy_duration_value,omitempty"`
	PolicyDurationUnit   string   `json:"policy_duration_unit,omitempty"`
	RawQuery             string   `json:"raw_query"`
}

// CompletedFields counts how many of age, procedure and policy duration are present.
func (p ParsedQuery) CompletedFields() int {
	n := 0
	if p.Age != nil {
		n++
	}
	if p.Procedure != nil {
		n++
	}
	if p.PolicyDurationMonths != nil {
		n++
	}
	return n
}

// Empty reports whether no field was extracted.
func (p ParsedQuery) Empty() bool {
	return p.Age == nil && p.Gender == nil && p.Procedure == nil &&
		p.Location == nil && p.PolicyDurationMonths == nil
}
