package model

import "time"

// Config is the complete policylens configuration
type Config struct {
	Classifier   ClassifierConfig   `yaml:"classifier" mapstructure:"classifier"`
	Digest       DigestConfig       `yaml:"digest" mapstructure:"digest"`
	Summarizer   SummarizerConfig   `yaml:"summarizer" mapstructure:"summarizer"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Lexicon      LexiconConfig      `yaml:"lexicon" mapstructure:"lexicon"`
	Loader       LoaderConfig       `yaml:"loader" mapstructure:"loader"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ClassifierConfig controls the policy document gate
type ClassifierConfig struct {
	Threshold int `yaml:"threshold" mapstructure:"threshold"` // Distinct domain keywords required
}

// DigestConfig controls per-section summarization
type DigestConfig struct {
	SentenceCount   int `yaml:"sentence_count" mapstructure:"sentence_count"`       // Sentences requested per section
	MinBulletLength int `yaml:"min_bullet_length" mapstructure:"min_bullet_length"` // Shorter sentences are dropped
	Workers         int `yaml:"workers" mapstructure:"workers"`                     // Sections summarized in parallel
}

// SummarizerConfig selects and configures the summarization backend
type SummarizerConfig struct {
	Provider         string `yaml:"provider" mapstructure:"provider"` // extractive, openai, anthropic, ollama
	Model            string `yaml:"model" mapstructure:"model"`
	APIKey           string `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL          string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout          int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens        int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictExtraction bool   `yaml:"strict_extraction" mapstructure:"strict_extraction"` // Whole input sentences only; false also allows fragments of the input
	HTTPProxy        string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy       string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy          string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// RateLimitingConfig bounds calls to remote summarizer backends
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`

	// Backends overrides the budget per backend name (openai, anthropic, ollama)
	Backends map[string]BackendRateConfig `yaml:"backends,omitempty" mapstructure:"backends"`
}

// BackendRateConfig is the budget of one backend; requests_per_second <= 0 means unlimited
type BackendRateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the summary cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LexiconConfig points at an optional YAML lexicon override
type LexiconConfig struct {
	Path string `yaml:"path,omitempty" mapstructure:"path"`
}

// LoaderConfig controls reading documents from disk
type LoaderConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Threshold: 3,
		},
		Digest: DigestConfig{
			SentenceCount:   5,
			MinBulletLength: 20,
			Workers:         4,
		},
		Summarizer: SummarizerConfig{
			Provider:         "extractive",
			Timeout:          30,
			MaxTokens:        1000,
			StrictExtraction: true,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Loader: LoaderConfig{
			MaxBytes: 10_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
