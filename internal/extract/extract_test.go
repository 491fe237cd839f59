package extract

import "testing"

var testProcedures = []string{"knee", "heart", "surgery", "cancer", "dental", "cosmetic"}

func TestParse_KneeShortPolicy(t *testing.T) {
	p := NewParser(testProcedures).Parse("46-year-old male, knee surgery, policy 3 months old")

	if p.Age == nil || *p.Age != 46 {
		t.Errorf("Age = %v, want 46", p.Age)
	}
	if p.Gender == nil || *p.Gender != GenderMale {
		t.Errorf("Gender = %v, want male", p.Gender)
	}
	if p.Procedure == nil || *p.Procedure != "knee" {
		t.Errorf("Procedure = %v, want knee", p.Procedure)
	}
	if p.PolicyDurationMonths == nil || *p.PolicyDurationMonths != 3 {
		t.Errorf("PolicyDurationMonths = %v, want 3", p.PolicyDurationMonths)
	}
	if p.PolicyDurationUnit != UnitMonths {
		t.Errorf("PolicyDurationUnit = %q, want %q", p.PolicyDurationUnit, UnitMonths)
	}
	if p.Location != nil {
		t.Errorf("Location = %q, want nil", *p.Location)
	}
}

func TestParse_HealthyThirtyYearOld(t *testing.T) {
	p := NewParser(testProcedures).Parse("healthy 30 year old, knee surgery, 14 month policy")

	if p.Age == nil || *p.Age != 30 {
		t.Errorf("Age = %v, want 30", p.Age)
	}
	if p.Gender != nil {
		t.Errorf("Gender = %q, want nil", *p.Gender)
	}
	if p.PolicyDurationMonths == nil || *p.PolicyDurationMonths != 14 {
		t.Errorf("PolicyDurationMonths = %v, want 14", p.PolicyDurationMonths)
	}
}

func TestParse_NoPatterns(t *testing.T) {
	p := NewParser(testProcedures).Parse("hello there, nothing useful here")
	if !p.Empty() {
		t.Errorf("expected empty ParsedQuery, got %+v", p)
	}
	if p.CompletedFields() != 0 {
		t.Errorf("CompletedFields() = %d, want 0", p.CompletedFields())
	}
	if p.RawQuery != "hello there, nothing useful here" {
		t.Errorf("RawQuery = %q", p.RawQuery)
	}
}

func TestParse_EmptyString(t *testing.T) {
	p := NewParser(testProcedures).Parse("")
	if !p.Empty() {
		t.Errorf("expected empty ParsedQuery, got %+v", p)
	}
}

func TestParse_Age(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"46-year-old male", 46},
		{"a 70 years old woman", 70},
		{"claimant 52 yrs old", 52},
		{"35M knee surgery", 35},
		{"41 female, dental", 41},
		{"patient 29y, cancer", 29},
		{"0 year old infant", 0},
	}
	parser := NewParser(testProcedures)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := parser.Parse(tt.query)
			if p.Age == nil {
				t.Fatalf("Age = nil, want %d", tt.want)
			}
			if *p.Age != tt.want {
				t.Errorf("Age = %d, want %d", *p.Age, tt.want)
			}
		})
	}
}

func TestParse_AgePriority(t *testing.T) {
	// "N years old" outranks "N M".
	p := NewParser(testProcedures).Parse("25M, 61 years old")
	if p.Age == nil || *p.Age != 61 {
		t.Errorf("Age = %v, want 61", p.Age)
	}
}

func TestParse_Gender(t *testing.T) {
	tests := []struct {
		query string
		want  Gender
	}{
		{"46M knee", GenderMale},
		{"35F dental", GenderFemale},
		{"female patient", GenderFemale},
		{"MALE, 40", GenderMale},
		{"a 3 month old policy for a female", GenderFemale},
	}
	parser := NewParser(testProcedures)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := parser.Parse(tt.query)
			if p.Gender == nil {
				t.Fatalf("Gender = nil, want %s", tt.want)
			}
			if *p.Gender != tt.want {
				t.Errorf("Gender = %s, want %s", *p.Gender, tt.want)
			}
		})
	}
}

func TestParse_GenderIgnoresWordsContainingLetters(t *testing.T) {
	p := NewParser(testProcedures).Parse("policy from last month")
	if p.Gender != nil {
		t.Errorf("Gender = %s, want nil", *p.Gender)
	}
}

func TestParse_ProcedureTableOrder(t *testing.T) {
	parser := NewParser(testProcedures)

	// "knee" precedes "surgery" in the table, so it wins even though both appear.
	p := parser.Parse("surgery on the knee")
	if p.Procedure == nil || *p.Procedure != "knee" {
		t.Errorf("Procedure = %v, want knee", p.Procedure)
	}

	p = parser.Parse("HEART bypass")
	if p.Procedure == nil || *p.Procedure != "heart" {
		t.Errorf("Procedure = %v, want heart", p.Procedure)
	}
}

func TestParse_ProcedureGenericFallback(t *testing.T) {
	parser := NewParser([]string{"knee"})
	for _, q := range []string{"minor operation", "a procedure", "needs treatment", "Surgery tomorrow"} {
		p := parser.Parse(q)
		if p.Procedure == nil || *p.Procedure != GenericProcedure {
			t.Errorf("Parse(%q).Procedure = %v, want %q", q, p.Procedure, GenericProcedure)
		}
	}
}

func TestParse_Location(t *testing.T) {
	parser := NewParser(testProcedures)

	p := parser.Parse("46M, knee surgery in Pune, 3-month policy")
	if p.Location == nil || *p.Location != "Pune" {
		t.Errorf("Location = %v, want Pune", p.Location)
	}

	p = parser.Parse("In MUMBAI for heart surgery")
	if p.Location == nil || *p.Location != "Mumbai" {
		t.Errorf("Location = %v, want Mumbai", p.Location)
	}

	p = parser.Parse("surgery in pune")
	if p.Location != nil {
		t.Errorf("Location = %q, want nil for lower-case city", *p.Location)
	}
}

func TestParse_PolicyDuration(t *testing.T) {
	tests := []struct {
		query  string
		months float64
		value  int
		unit   string
	}{
		{"3-month policy", 3, 3, UnitMonths},
		{"policy 8 months old", 8, 8, UnitMonths},
		{"policy is 14 months", 14, 14, UnitMonths},
		{"2 year policy", 24, 2, UnitYears},
		{"2-year-old policy", 24, 2, UnitYears},
		{"policy of 3 years", 36, 3, UnitYears},
		{"90 day policy", 3, 90, UnitDays},
		{"policy 45 days", 1.5, 45, UnitDays},
	}
	parser := NewParser(testProcedures)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := parser.Parse(tt.query)
			if p.PolicyDurationMonths == nil {
				t.Fatalf("PolicyDurationMonths = nil, want %v", tt.months)
			}
			if *p.PolicyDurationMonths != tt.months {
				t.Errorf("PolicyDurationMonths = %v, want %v", *p.PolicyDurationMonths, tt.months)
			}
			if p.PolicyDurationValue == nil || *p.PolicyDurationValue != tt.value {
				t.Errorf("PolicyDurationValue = %v, want %d", p.PolicyDurationValue, tt.value)
			}
			if p.PolicyDurationUnit != tt.unit {
				t.Errorf("PolicyDurationUnit = %q, want %q", p.PolicyDurationUnit, tt.unit)
			}
		})
	}
}

func TestParse_DurationMonthsBeatYears(t *testing.T) {
	p := NewParser(testProcedures).Parse("2 year policy, renewed 5 month policy")
	if p.PolicyDurationUnit != UnitMonths || *p.PolicyDurationMonths != 5 {
		t.Errorf("got %v %s, want 5 months", p.PolicyDurationMonths, p.PolicyDurationUnit)
	}
}

func TestParse_AgeIsNotPolicyDuration(t *testing.T) {
	p := NewParser(testProcedures).Parse("46-year-old male, knee surgery")
	if p.PolicyDurationMonths != nil {
		t.Errorf("PolicyDurationMonths = %v, want nil", *p.PolicyDurationMonths)
	}
}

func TestParse_Deterministic(t *testing.T) {
	parser := NewParser(testProcedures)
	q := "46-year-old male, knee surgery in Pune, 3-month policy"
	a, b := parser.Parse(q), parser.Parse(q)
	if *a.Age != *b.Age || *a.Procedure != *b.Procedure || *a.Location != *b.Location ||
		*a.PolicyDurationMonths != *b.PolicyDurationMonths || *a.Gender != *b.Gender {
		t.Errorf("Parse is not deterministic: %+v vs %+v", a, b)
	}
}

func TestNewParser_CopiesProcedures(t *testing.T) {
	names := []string{"knee"}
	parser := NewParser(names)
	names[0] = "heart"

	p := parser.Parse("knee pain")
	if p.Procedure == nil || *p.Procedure != "knee" {
		t.Errorf("Procedure = %v, want knee", p.Procedure)
	}
}
