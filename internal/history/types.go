package history

import (
	"encoding/json"
	"time"
)

// Record is one processed claim query.
type Record struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"session_id"`
	Query           string          `json:"query"`
	Decision        string          `json:"decision"`
	Amount          float64         `json:"amount"`
	ConfidenceScore float64         `json:"confidence_score"`
	Result          json.RawMessage `json:"result"`
	Timestamp       time.Time       `json:"timestamp"`
	ProcessingTime  float64         `json:"processing_time"`
}

// Session groups the queries sent with the same session id.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	QueryCount int       `json:"query_count"`
}

// Filter narrows Find and Count. Zero fields match everything.
type Filter struct {
	SessionID string
	Decision  string
	Since     *time.Time
	Limit     int
}
