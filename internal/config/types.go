package config

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = ".claimdesk.yml"

// Config is the top-level claimdesk configuration, corresponding to .claimdesk.yml.
type Config struct {
	DataDir      string            `yaml:"data_dir" koanf:"data_dir"`
	DocumentsDir string            `yaml:"documents_dir" koanf:"documents_dir"`
	Include      []string          `yaml:"include" koanf:"include"`
	Exclude      []string          `yaml:"exclude" koanf:"exclude"`
	Server       ServerConfig      `yaml:"server" koanf:"server"`
	Log          LogConfig         `yaml:"log" koanf:"log"`
	Chunking     ChunkingConfig    `yaml:"chunking" koanf:"chunking"`
	Search       SearchConfig      `yaml:"search" koanf:"search"`
	Rules        RulesConfig       `yaml:"rules" koanf:"rules"`
	Procedures   []ProcedureConfig `yaml:"procedures" koanf:"procedures"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Pretty bool   `yaml:"pretty" koanf:"pretty"`
}

// ChunkingConfig controls how document text is split into overlapping word windows.
type ChunkingConfig struct {
	Size    int `yaml:"size" koanf:"size"`
	Overlap int `yaml:"overlap" koanf:"overlap"`
}

// SearchConfig controls keyword-vector chunk matching.
type SearchConfig struct {
	TopK      int     `yaml:"top_k" koanf:"top_k"`
	Threshold float64 `yaml:"threshold" koanf:"threshold"`
}

// RulesConfig holds the decision thresholds applied to every claim.
type RulesConfig struct {
	MinPolicyDurationMonths float64 `yaml:"min_policy_duration_months" koanf:"min_policy_duration_months"`
	MaxAgeStandard          int     `yaml:"max_age_standard" koanf:"max_age_standard"`
	MaxAgePremium           int     `yaml:"max_age_premium" koanf:"max_age_premium"`
	BaseCoverageAmount      float64 `yaml:"base_coverage_amount" koanf:"base_coverage_amount"`
	PremiumMultiplier       float64 `yaml:"premium_multiplier" koanf:"premium_multiplier"`
	AgePenaltyFactor        float64 `yaml:"age_penalty_factor" koanf:"age_penalty_factor"`
}

// ProcedureConfig is one row of the procedure table. Table order is the
// order in which procedure names are scanned for in a query.
type ProcedureConfig struct {
	Name       string  `yaml:"name" koanf:"name"`
	Covered    bool    `yaml:"covered" koanf:"covered"`
	Category   string  `yaml:"category" koanf:"category"`
	BaseAmount float64 `yaml:"base_amount" koanf:"base_amount"`
}
