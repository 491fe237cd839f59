package documents

import (
	"time"

	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// Document is the persisted record of one policy document. A document that
// failed to ingest has Processed false and Error set.
type Document struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	UploadDate  time.Time            `json:"upload_date"`
	Processed   bool                 `json:"processed"`
	Error       string               `json:"error,omitempty"`
	ContentHash string               `json:"content_hash,omitempty"`
	TextContent string               `json:"-"`
	TextLength  int                  `json:"text_length"`
	ChunkCount  int                  `json:"chunk_count"`
	PolicyInfo  retrieval.PolicyInfo `json:"policy_info"`
}

// Filter narrows Find and Count. Zero fields match everything.
type Filter struct {
	Processed *bool
	Type      string
}
