package model

import "time"

// Config is the full runtime configuration. Loaded by viper from flags,
// CLEARUSE_* environment variables and ~/.clearuse/config.yaml, in that
// order of priority.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Lookup      LookupConfig      `yaml:"lookup" json:"lookup"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Context     ContextConfig     `yaml:"context" json:"context"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Server      ServerConfig      `yaml:"server" json:"server"`
}

// HTTPConfig covers outbound requests (alternative-source lookups).
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// CacheConfig controls the layered report cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// LookupConfig controls the optional remote alternative-source search.
type LookupConfig struct {
	Enabled           bool          `yaml:"enabled" json:"enabled"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	MaxResults        int           `yaml:"max_results" json:"max_results"`
	VerifyLinks       bool          `yaml:"verify_links" json:"verify_links"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" json:"burst_size"`
}

// ConcurrencyConfig controls batch processing and link verification.
type ConcurrencyConfig struct {
	Workers       int `yaml:"workers" json:"workers"`
	VerifyWorkers int `yaml:"verify_workers" json:"verify_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// ContextConfig holds default course context for assessments.
type ContextConfig struct {
	CourseType      string `yaml:"course_type" json:"course_type"`
	InstitutionType string `yaml:"institution_type" json:"institution_type"`
}

// LLMConfig configures the optional plain-language explanation provider.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty" json:"provider,omitempty"` // "openai" or "" (disabled)
	Model     string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey    string `yaml:"-" json:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `yaml:"addr" json:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	UploadDir      string `yaml:"upload_dir" json:"upload_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Clearuse/0.1 (+https://github.com/clearuse/clearuse)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.clearuse/cache at runtime
			TTL:     24 * time.Hour,
		},
		Lookup: LookupConfig{
			Enabled:           true,
			Timeout:           10 * time.Second,
			MaxResults:        3,
			VerifyLinks:       false,
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			VerifyWorkers: 10,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Context: ContextConfig{
			CourseType:      string(CourseOnline),
			InstitutionType: string(InstitutionPublicUniversity),
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 500,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 16 << 20,
			UploadDir:      "", // os.TempDir() when empty
		},
	}
}
