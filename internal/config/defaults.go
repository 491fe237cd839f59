package config

// DefaultExcludes are glob patterns never ingested as policy documents.
var DefaultExcludes = []string{
	".git/**",
	"**/.DS_Store",
	"*.tmp",
	"~$*",
}

// DefaultProcedures is the built-in procedure table.
var DefaultProcedures = []ProcedureConfig{
	{Name: "knee", Covered: true, Category: "orthopedic", BaseAmount: 75000},
	{Name: "heart", Covered: true, Category: "cardiac", BaseAmount: 200000},
	{Name: "surgery", Covered: true, Category: "general", BaseAmount: 50000},
	{Name: "cancer", Covered: true, Category: "oncology", BaseAmount: 500000},
	{Name: "dental", Covered: false, Category: "dental", BaseAmount: 0},
	{Name: "cosmetic", Covered: false, Category: "cosmetic", BaseAmount: 0},
}

// DefaultRules returns the built-in decision thresholds.
func DefaultRules() RulesConfig {
	return RulesConfig{
		MinPolicyDurationMonths: 6,
		MaxAgeStandard:          60,
		MaxAgePremium:           75,
		BaseCoverageAmount:      50000,
		PremiumMultiplier:       1.5,
		AgePenaltyFactor:        0.8,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	procs := make([]ProcedureConfig, len(DefaultProcedures))
	copy(procs, DefaultProcedures)

	excludes := make([]string, len(DefaultExcludes))
	copy(excludes, DefaultExcludes)

	return &Config{
		DataDir:      ".claimdesk",
		DocumentsDir: "policies",
		Include:      []string{"**/*.pdf", "**/*.txt", "**/*.md", "**/*.html", "**/*.htm"},
		Exclude:      excludes,
		Server: ServerConfig{
			Port:            8001,
			AllowAllOrigins: true,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
		Chunking: ChunkingConfig{
			Size:    500,
			Overlap: 100,
		},
		Search: SearchConfig{
			TopK:      5,
			Threshold: 0.5,
		},
		Rules:      DefaultRules(),
		Procedures: procs,
	}
}
