package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Chunking.Size != 500 || cfg.Chunking.Overlap != 100 {
		t.Errorf("expected 500/100 chunking, got %d/%d", cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	if cfg.Search.Threshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %v", cfg.Search.Threshold)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected top_k 5, got %d", cfg.Search.TopK)
	}
	if cfg.Rules.BaseCoverageAmount != 50000 {
		t.Errorf("expected base coverage 50000, got %v", cfg.Rules.BaseCoverageAmount)
	}
	if len(cfg.Procedures) != 6 || cfg.Procedures[0].Name != "knee" {
		t.Errorf("unexpected default procedures: %+v", cfg.Procedures)
	}
}

func TestDefaultConfigDoesNotAliasDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Procedures[0].BaseAmount = 1
	if DefaultProcedures[0].BaseAmount != 75000 {
		t.Fatal("DefaultConfig shares the DefaultProcedures backing array")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.claimdesk.yml")

	original := DefaultConfig()
	original.DocumentsDir = "contracts"
	original.Server.Port = 9090
	original.Search.TopK = 3
	original.Rules.MaxAgePremium = 80
	original.Procedures = []ProcedureConfig{
		{Name: "hip", Covered: true, Category: "orthopedic", BaseAmount: 90000},
		{Name: "dental", Covered: false, Category: "dental"},
	}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DocumentsDir != "contracts" {
		t.Errorf("documents_dir: got %q, want %q", loaded.DocumentsDir, "contracts")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Search.TopK != 3 {
		t.Errorf("top_k: got %d, want 3", loaded.Search.TopK)
	}
	if loaded.Rules.MaxAgePremium != 80 {
		t.Errorf("max_age_premium: got %d, want 80", loaded.Rules.MaxAgePremium)
	}
	if len(loaded.Procedures) != 2 {
		t.Fatalf("procedures length: got %d, want 2", len(loaded.Procedures))
	}
	if loaded.Procedures[0].Name != "hip" || loaded.Procedures[0].BaseAmount != 90000 {
		t.Errorf("procedures[0] = %+v", loaded.Procedures[0])
	}
	if loaded.Procedures[1].Covered {
		t.Error("procedures[1] should not be covered")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8001 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
	if len(cfg.Procedures) != len(DefaultProcedures) {
		t.Errorf("expected default procedures, got %d", len(cfg.Procedures))
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CLAIMDESK_DOCUMENTS_DIR", "/srv/policies")
	t.Setenv("CLAIMDESK_SEARCH__TOP_K", "7")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DocumentsDir != "/srv/policies" {
		t.Errorf("env override failed: got %q", loaded.DocumentsDir)
	}
	if loaded.Search.TopK != 7 {
		t.Errorf("nested env override failed: got %d, want 7", loaded.Search.TopK)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/claimdesk"
	if got := cfg.DatabasePath(); got != filepath.Join("/var/lib/claimdesk", "claimdesk.db") {
		t.Errorf("DatabasePath() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"zero chunk size", func(c *Config) { c.Chunking.Size = 0 }, true},
		{"overlap too large", func(c *Config) { c.Chunking.Overlap = 500 }, true},
		{"negative overlap", func(c *Config) { c.Chunking.Overlap = -1 }, true},
		{"zero top_k", func(c *Config) { c.Search.TopK = 0 }, true},
		{"negative threshold", func(c *Config) { c.Search.Threshold = -0.1 }, true},
		{"inverted ages", func(c *Config) { c.Rules.MaxAgePremium = 50 }, true},
		{"penalty above one", func(c *Config) { c.Rules.AgePenaltyFactor = 1.2 }, true},
		{"negative base coverage", func(c *Config) { c.Rules.BaseCoverageAmount = -1 }, true},
		{"empty procedure name", func(c *Config) { c.Procedures[0].Name = " " }, true},
		{"duplicate procedure", func(c *Config) { c.Procedures[1].Name = "KNEE" }, true},
		{"negative procedure amount", func(c *Config) { c.Procedures[2].BaseAmount = -5 }, true},
		{"no procedures", func(c *Config) { c.Procedures = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	for _, tt := range []struct {
		in      string
		wantErr bool
	}{
		{"8001", false},
		{"0", true},
		{"abc", true},
		{"65536", true},
	} {
		if err := validatePort(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validatePort(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.pdf", []string{"**/*.pdf"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
