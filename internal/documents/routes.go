package documents

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/claimdesk/internal/walker"
)

// RegisterRoutes mounts document endpoints under /api/documents.
func RegisterRoutes(r chi.Router, in *Ingester) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", handleList(in))
		r.Post("/", handleUpload(in))
		r.Get("/summary", handleSummary(in))
	})
}

func handleList(in *Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Filter
		switch r.URL.Query().Get("processed") {
		case "true":
			v := true
			f.Processed = &v
		case "false":
			v := false
			f.Processed = &v
		}
		f.Type = r.URL.Query().Get("type")

		docs, err := in.store.Find(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func handleSummary(in *Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, in.chunks.Summaries())
	}
}

type uploadRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Type string `json:"type"`
}

func handleUpload(in *Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		format := walker.DetectFormat(req.Name)
		if req.Type != "" {
			format = walker.Format(req.Type)
		}
		text := req.Text
		if format == walker.FormatHTML {
			extracted, err := HTMLText([]byte(req.Text))
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			text = extracted
		}

		doc, err := in.IngestText(r.Context(), req.Name, format, text, "")
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !doc.Processed {
			writeJSON(w, http.StatusUnprocessableEntity, doc)
			return
		}
		writeJSON(w, http.StatusCreated, doc)
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
