package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/claimdesk/internal/config"
	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/progress"
	"github.com/ziadkadry99/claimdesk/internal/server"
)

const policyText = `Star Health Policy No: SH1001
Knee surgery coverage: Rs. 80,000 under the orthopedic benefit.
Claims must be filed within 30 days of discharge.`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.DocumentsDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.DocumentsDir, "star.txt"), []byte(policyText), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestOpenApp_IngestAndRestore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := openApp(ctx, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	report, err := a.ingestDocuments(ctx, "", progress.Nop{})
	if err != nil {
		t.Fatalf("ingestDocuments: %v", err)
	}
	if report.Ingested != 1 || a.chunks.Len() != 1 {
		t.Fatalf("report = %+v, documents = %d", report, a.chunks.Len())
	}

	resp := a.processor.ProcessQuery(ctx, "35 year old, knee surgery, 12 months policy", "cli")
	if resp.Decision != decision.Approved || resp.Amount != 80000 {
		t.Errorf("got %s / %v, want approved / 80000", resp.Decision, resp.Amount)
	}
	a.Close()

	reopened, err := openApp(ctx, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if reopened.chunks.Len() != 1 {
		t.Errorf("restored %d documents, want 1", reopened.chunks.Len())
	}
	stats, err := reopened.processor.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalQueries != 1 || stats.TotalSessions != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestIngestDocuments_MissingDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.DocumentsDir = filepath.Join(cfg.DataDir, "absent")

	a, err := openApp(context.Background(), cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()

	report, err := a.ingestDocuments(context.Background(), "", progress.Nop{})
	if err != nil {
		t.Fatalf("ingestDocuments: %v", err)
	}
	if report.Total != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRegisterAllRoutes(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := openApp(ctx, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()
	if _, err := a.ingestDocuments(ctx, "", progress.Nop{}); err != nil {
		t.Fatalf("ingestDocuments: %v", err)
	}

	srv := server.New(server.Config{}, zerolog.New(io.Discard), a.metrics)
	registerAllRoutes(srv, a)

	for _, path := range []string{"/", "/api/health", "/api/stats", "/api/processor", "/api/documents", "/api/documents/summary", "/api/session/x/history", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", path, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	var stats map[string]any
	json.NewDecoder(w.Body).Decode(&stats)
	if stats["total_documents"] != float64(1) || stats["system_status"] != "operational" {
		t.Errorf("stats = %v", stats)
	}
}
