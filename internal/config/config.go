package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "CLAIMDESK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CLAIMDESK_*). A double underscore
// separates nested keys: CLAIMDESK_SEARCH__TOP_K -> search.top_k.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists given in the file replace the defaults instead of merging
	// element by element.
	if k.Exists("procedures") {
		cfg.Procedures = nil
	}
	if k.Exists("include") {
		cfg.Include = nil
	}
	if k.Exists("exclude") {
		cfg.Exclude = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// DatabasePath is where the SQLite database lives inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "claimdesk.db")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Log.Level != "" && !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}

	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, size)")
	}

	if c.Search.TopK <= 0 {
		return fmt.Errorf("search.top_k must be positive")
	}
	if c.Search.Threshold < 0 {
		return fmt.Errorf("search.threshold must be non-negative")
	}

	if err := c.Rules.validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Procedures))
	for i, p := range c.Procedures {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			return fmt.Errorf("procedures[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("procedures[%d]: duplicate procedure %q", i, p.Name)
		}
		seen[name] = true
		if p.BaseAmount < 0 {
			return fmt.Errorf("procedures[%d]: base_amount must be non-negative", i)
		}
	}

	return nil
}

func (r RulesConfig) validate() error {
	if r.MinPolicyDurationMonths < 0 {
		return fmt.Errorf("rules.min_policy_duration_months must be non-negative")
	}
	if r.MaxAgeStandard < 0 || r.MaxAgePremium < r.MaxAgeStandard {
		return fmt.Errorf("rules: need 0 <= max_age_standard <= max_age_premium")
	}
	if r.BaseCoverageAmount < 0 {
		return fmt.Errorf("rules.base_coverage_amount must be non-negative")
	}
	if r.AgePenaltyFactor < 0 || r.AgePenaltyFactor > 1 {
		return fmt.Errorf("rules.age_penalty_factor must be in [0, 1]")
	}
	return nil
}
