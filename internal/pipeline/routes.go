package pipeline

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the query endpoints on the given router.
func RegisterRoutes(r chi.Router, p *Processor) {
	r.Post("/api/query", handleQuery(p))
	r.Post("/api/search", handleSearch(p))
	r.Get("/api/processor", handleInfo(p))
	r.Get("/api/stats", handleStats(p))
	r.Get("/api/assess", handleAssess(p))
}

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

func handleQuery(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}
		writeJSON(w, http.StatusOK, p.ProcessQuery(r.Context(), req.Query, req.SessionID))
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func handleSearch(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TopK < 0 {
			writeError(w, http.StatusBadRequest, "top_k must not be negative")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"query":   req.Query,
			"matches": p.SearchSimilarChunks(req.Query, req.TopK),
		})
	}
}

func handleInfo(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, p.Info())
	}
}

func handleStats(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := p.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleAssess(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		if strings.TrimSpace(q) == "" {
			writeError(w, http.StatusBadRequest, "query parameter is required")
			return
		}
		writeJSON(w, http.StatusOK, p.Assess(q))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
