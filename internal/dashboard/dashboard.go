// Package dashboard serves the interactive claim desk: a single page that
// submits queries over a websocket and links to printable claim reports.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/claimdesk/internal/history"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

// Dashboard provides the claim desk page and its live endpoints.
type Dashboard struct {
	processor *pipeline.Processor
	history   *history.Store
	logger    zerolog.Logger
}

// New creates a Dashboard. hist may be nil, in which case recent activity
// is always empty.
func New(processor *pipeline.Processor, hist *history.Store, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		processor: processor,
		history:   hist,
		logger:    logger,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/report", d.handleReport)
	r.Get("/api/dashboard/recent", d.handleRecent)
	r.Get("/ws/claims", d.handleWebSocket)
}
