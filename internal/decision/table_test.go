package decision

import (
	"testing"

	"github.com/ziadkadry99/claimdesk/internal/config"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	names := table.ProcedureNames()
	want := []string{"knee", "heart", "surgery", "cancer", "dental", "cosmetic"}
	if len(names) != len(want) {
		t.Fatalf("ProcedureNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, names[i], want[i])
		}
	}

	r := table.Rules()
	if r.MinPolicyDurationMonths != 6 || r.MaxAgeStandard != 60 || r.MaxAgePremium != 75 ||
		r.BaseCoverageAmount != 50000 || r.PremiumMultiplier != 1.5 || r.AgePenaltyFactor != 0.8 {
		t.Errorf("unexpected default rules: %+v", r)
	}
}

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()

	p, ok := table.Lookup("KNEE")
	if !ok || p.Category != "orthopedic" || p.BaseAmount != 75000 || !p.Covered {
		t.Errorf("Lookup(KNEE) = %+v, %v", p, ok)
	}
	if _, ok := table.Lookup("spine"); ok {
		t.Error("Lookup(spine) should miss")
	}
}

func TestTable_Immutable(t *testing.T) {
	procs := []config.ProcedureConfig{{Name: "knee", Covered: true, Category: "orthopedic", BaseAmount: 75000}}
	table := NewTable(config.DefaultRules(), procs)

	procs[0].BaseAmount = 1
	got := table.Procedures()
	got[0].BaseAmount = 2

	p, _ := table.Lookup("knee")
	if p.BaseAmount != 75000 {
		t.Errorf("table was mutated through a caller slice: %v", p.BaseAmount)
	}
}

func TestNewTable_SkipsDuplicates(t *testing.T) {
	table := NewTable(config.DefaultRules(), []config.ProcedureConfig{
		{Name: "knee", Covered: true, BaseAmount: 1},
		{Name: "Knee", Covered: false, BaseAmount: 2},
		{Name: ""},
	})
	if n := len(table.Procedures()); n != 1 {
		t.Fatalf("got %d procedures, want 1", n)
	}
	p, _ := table.Lookup("knee")
	if p.BaseAmount != 1 {
		t.Errorf("first entry should win, got %+v", p)
	}
}
