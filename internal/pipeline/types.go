package pipeline

import (
	"time"

	"github.com/ziadkadry99/claimdesk/internal/assess"
	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/extract"
	"github.com/ziadkadry99/claimdesk/internal/justify"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// QueryResponse is the full answer to one claim query.
type QueryResponse struct {
	SessionID         string               `json:"session_id"`
	Query             string               `json:"query"`
	Decision          decision.Decision    `json:"decision"`
	Amount            float64              `json:"amount"`
	Justification     string               `json:"justification"`
	ConfidenceScore   float64              `json:"confidence_score"`
	ReferencedClauses []justify.Clause     `json:"referenced_clauses"`
	ParsedInfo        *extract.ParsedQuery `json:"parsed_info,omitempty"`
	Metadata          Metadata             `json:"processing_metadata"`
	ProcessingTime    float64              `json:"processing_time"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	ChunksAnalyzed  int       `json:"chunks_analyzed"`
	DecisionFactors []string  `json:"decision_factors"`
	Timestamp       time.Time `json:"timestamp"`
	ProcessingTime  float64   `json:"processing_time"`
}

// Stats are system-wide counters.
type Stats struct {
	TotalDocuments int    `json:"total_documents"`
	TotalChunks    int    `json:"total_chunks"`
	TotalQueries   int    `json:"total_queries"`
	TotalSessions  int    `json:"total_sessions"`
	SystemStatus   string `json:"system_status"`
}

// Info is the processor's configuration snapshot for diagnostics.
type Info struct {
	ModelInfo         assess.ModelInfo     `json:"llm_model_info"`
	DocumentSummaries []retrieval.Summary  `json:"document_summaries"`
	DecisionRules     decision.Rules       `json:"decision_rules"`
	ProcedureMappings []decision.Procedure `json:"procedure_mappings"`
	Status            string               `json:"status"`
}
