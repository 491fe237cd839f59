package report

import (
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/justify"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

func sampleResponse() pipeline.QueryResponse {
	return pipeline.QueryResponse{
		SessionID:       "abc",
		Query:           "46M knee surgery <b>now</b>",
		Decision:        decision.Approved,
		Amount:          75000,
		Justification:   "Decision: APPROVED\nApproved Amount: Rs. 75,000",
		ConfidenceScore: 0.72,
		ReferencedClauses: []justify.Clause{
			{Document: "policy.pdf", Content: "Knee | hip coverage\nup to Rs. 90,000", RelevanceScore: 12.5, ChunkIndex: 2},
		},
		Metadata: pipeline.Metadata{ChunksAnalyzed: 1, Timestamp: time.Now()},
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleResponse())

	for _, want := range []string{
		"# Claim report",
		"| Decision | **APPROVED** |",
		"| Amount | Rs. 75,000 |",
		"| Confidence | 72% |",
		"## Referenced clauses",
		`Knee \| hip coverage up to Rs. 90,000`,
		"| policy.pdf | 2 | 12.50 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown_NoClauses(t *testing.T) {
	resp := sampleResponse()
	resp.ReferencedClauses = nil

	if strings.Contains(Markdown(resp), "Referenced clauses") {
		t.Error("clause section rendered without clauses")
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleResponse())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `<body class="decision-approved">`) {
		t.Error("missing decision class")
	}
	if !strings.Contains(html, "<table>") {
		t.Error("expected GFM table output")
	}
	if strings.Contains(html, "<b>now</b>") {
		t.Error("query HTML was not escaped")
	}
}
