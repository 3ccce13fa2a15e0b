package model

import "time"

// Config holds the complete engine configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Audit       AuditConfig       `yaml:"audit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
}

// LLMConfig configures the external judgment capability
type LLMConfig struct {
	// Provider name: "deepseek", "openai", "anthropic"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for the provider
	APIKey string `yaml:"api_key"`

	// BaseURL for OpenAI-compatible endpoints (DeepSeek, local gateways)
	BaseURL string `yaml:"base_url"`

	// Timeout per judgment call, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens"`
}

// AuditConfig configures the deterministic verification layer
type AuditConfig struct {
	// CriticalEntities overrides the built-in sensitive institution
	// registry when non-empty
	CriticalEntities []string `yaml:"critical_entities"`

	// MaxEvidenceRunes caps the annotated ground-truth text sent to the
	// judgment capability
	MaxEvidenceRunes int `yaml:"max_evidence_runes"`

	// ToneCheck enables the advisory exaggeration assessment
	ToneCheck bool `yaml:"tone_check"`
}

// ConcurrencyConfig configures batch parallelism and call throttling
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
	RPM     int `yaml:"rpm"`
	Burst   int `yaml:"burst"`
}

// CacheConfig configures the in-memory verdict cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// LogConfig configures process logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "deepseek",
			Model:     "deepseek-chat",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Audit: AuditConfig{
			MaxEvidenceRunes: 25000,
			ToneCheck:        true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
			RPM:     60,
			Burst:   5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
