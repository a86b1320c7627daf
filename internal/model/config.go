package model

import "time"

// Config holds the full pipeline configuration. Vocabulary tables are
// loaded once at startup and passed by reference into the stages; no stage
// mutates them.
type Config struct {
	Lang        string            `yaml:"lang"`
	Enrich      EnrichConfig      `yaml:"enrich"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Vocab       VocabConfig       `yaml:"vocab"`
	HTTP        HTTPConfig        `yaml:"http"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// EnrichConfig controls the external-knowledge gateway.
type EnrichConfig struct {
	Enabled       bool          `yaml:"enabled"`
	BaseURL       string        `yaml:"base_url"`
	UserAgent     string        `yaml:"user_agent"`
	FanoutLimit   int           `yaml:"fanout_limit"`   // max concurrent lookups per run
	Timeout       time.Duration `yaml:"timeout"`        // per-lookup deadline
	MaxConcepts   int           `yaml:"max_concepts"`   // cap on distinct concepts per run
	RatePerSecond float64       `yaml:"rate_per_second"`
	RespectRobots bool          `yaml:"respect_robots"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

// ConcurrencyConfig bounds the pipeline's parallelism.
type ConcurrencyConfig struct {
	SentenceWorkers int `yaml:"sentence_workers"` // parallel per-sentence stages
	BatchWorkers    int `yaml:"batch_workers"`    // concurrent documents in batch mode
}

// VocabConfig points at optional YAML overrides for the built-in tables.
type VocabConfig struct {
	PrimeFile    string `yaml:"prime_file"`    // semantic prime vocabulary
	PolarityFile string `yaml:"polarity_file"` // lexical polarity table
}

// HTTPConfig holds proxy settings for outbound calls (enrichment, LLM).
type HTTPConfig struct {
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// LLMConfig configures the optional post-scoring summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Lang: "en",
		Enrich: EnrichConfig{
			Enabled:       true,
			BaseURL:       "https://en.wikipedia.org/api/rest_v1/page/summary",
			UserAgent:     "Culpa/0.1 (+https://github.com/rbaumann/culpa)",
			FanoutLimit:   4,
			Timeout:       10 * time.Second,
			MaxConcepts:   20,
			RatePerSecond: 2,
			RespectRobots: true,
			CacheTTL:      15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			SentenceWorkers: 8,
			BatchWorkers:    4,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
