package model

import "time"

// Config is the complete Veridict configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Limits   LimitsConfig   `yaml:"limits"`
	Evidence EvidenceConfig `yaml:"evidence"`
	Article  ArticleConfig  `yaml:"article"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OpenAIConfig controls the completion and moderation provider
type OpenAIConfig struct {
	APIKey          string        `yaml:"-"` // env only, never written to config files
	BaseURL         string        `yaml:"base_url,omitempty"`
	Model           string        `yaml:"model"`
	ModerationModel string        `yaml:"moderation_model"`
	Timeout         time.Duration `yaml:"timeout"` // per upstream call
}

// LimitsConfig controls admission and input validation
type LimitsConfig struct {
	MaxRequests   int           `yaml:"max_requests"`    // quota N per window
	Window        time.Duration `yaml:"window"`          // rolling window W
	MaxInputChars int           `yaml:"max_input_chars"` // input validation ceiling
}

// EvidenceConfig controls the evidence retrieval phase
type EvidenceConfig struct {
	TimeWindowDays    int           `yaml:"time_window_days"` // freshness policy sent to the model
	MinWindowDays     int           `yaml:"min_window_days"`  // tool schema lower bound
	MaxWindowDays     int           `yaml:"max_window_days"`  // tool schema upper bound
	MinResults        int           `yaml:"min_results"`
	MaxResults        int           `yaml:"max_results"`
	SearchBaseURL     string        `yaml:"search_base_url"`
	SearchTimeout     time.Duration `yaml:"search_timeout"`
	UserAgent         string        `yaml:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // outbound limit toward the search backend
	Burst             int           `yaml:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// ArticleConfig controls the extract-article collaborator
type ArticleConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	UserAgent       string        `yaml:"user_agent"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	MinContentChars int           `yaml:"min_content_chars"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns the recognized defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		OpenAI: OpenAIConfig{
			Model:           "gpt-5-mini-2025-08-07",
			ModerationModel: "omni-moderation-latest",
			Timeout:         2 * time.Minute,
		},
		Limits: LimitsConfig{
			MaxRequests:   15,
			Window:        60 * time.Minute,
			MaxInputChars: 100_000,
		},
		Evidence: EvidenceConfig{
			TimeWindowDays:    365,
			MinWindowDays:     1,
			MaxWindowDays:     365,
			MinResults:        3,
			MaxResults:        10,
			SearchTimeout:     15 * time.Second,
			UserAgent:         "Veridict/0.1 (+https://github.com/veridict/veridict)",
			RequestsPerSecond: 2,
			Burst:             5,
			CacheTTL:          15 * time.Minute,
		},
		Article: ArticleConfig{
			Timeout:         10 * time.Second,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			MaxBodyBytes:    2_000_000,
			MinContentChars: 100,
			CacheTTL:        10 * time.Minute,
		},
	}
}
