package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ziadkadry99/claimdesk/internal/report"
)

const recentLimit = 10

// recentItem is one row of the recent activity feed.
type recentItem struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Query           string    `json:"query"`
	Decision        string    `json:"decision"`
	Amount          float64   `json:"amount"`
	ConfidenceScore float64   `json:"confidence_score"`
	Timestamp       time.Time `json:"timestamp"`
}

func (d *Dashboard) handleRecent(w http.ResponseWriter, r *http.Request) {
	items := []recentItem{}
	if d.history == nil {
		writeJSON(w, http.StatusOK, items)
		return
	}

	records, err := d.history.Recent(r.Context(), recentLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	for _, rec := range records {
		items = append(items, recentItem{
			ID:              rec.ID,
			SessionID:       rec.SessionID,
			Query:           rec.Query,
			Decision:        rec.Decision,
			Amount:          rec.Amount,
			ConfidenceScore: rec.ConfidenceScore,
			Timestamp:       rec.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// handleReport processes ?query= and renders the result as an HTML report.
func (d *Dashboard) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("query")
	if strings.TrimSpace(q) == "" {
		http.Error(w, "query parameter is required", http.StatusBadRequest)
		return
	}

	resp := d.processor.ProcessQuery(r.Context(), q, r.URL.Query().Get("session_id"))
	page, err := report.HTML(resp)
	if err != nil {
		d.logger.Error().Err(err).Msg("rendering claim report")
		http.Error(w, "rendering report failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
