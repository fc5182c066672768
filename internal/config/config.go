package config

import (
	"fmt"
	"os"

	"github.com/socialpulse/postfilter/internal/models"
	"gopkg.in/yaml.v3"
)

// FilterConfig is the resolved filter configuration. It is loaded once and
// never re-read mid-pipeline.
type FilterConfig struct {
	Enabled bool        `yaml:"enabled"`
	Rules   RulesConfig `yaml:"rules"`
	AI      AIConfig    `yaml:"ai"`
}

// RulesConfig toggles the deterministic rule stage.
type RulesConfig struct {
	MinTextLength             int  `yaml:"min_text_length"`
	FilterMediaOnly           bool `yaml:"filter_media_only"`
	FilterReplyWithoutContext bool `yaml:"filter_reply_without_context"`
	FilterExternalReferences  bool `yaml:"filter_external_references"`
}

// AIConfig controls the semantic scoring stage.
type AIConfig struct {
	Enabled         bool             `yaml:"enabled"`
	MinQualityScore float64          `yaml:"min_quality_score"`
	BatchSize       int              `yaml:"batch_size"`
	MaxConcurrent   int              `yaml:"max_concurrent"`
	Model           string           `yaml:"model"`
	TimeoutSeconds  float64          `yaml:"timeout_seconds"`
	OnFailure       models.OnFailure `yaml:"on_failure"`
	// Retry routes scoring calls through the client's retrying entry point.
	Retry bool `yaml:"retry"`
}

// Default returns a fully-resolved config with both stages enabled and all
// rule toggles on.
func Default() FilterConfig {
	cfg := FilterConfig{
		Enabled: true,
		Rules: RulesConfig{
			FilterMediaOnly:           true,
			FilterReplyWithoutContext: true,
			FilterExternalReferences:  true,
		},
		AI: AIConfig{
			Enabled: true,
		},
	}
	applyDefaults(&cfg)
	return cfg
}

// Load reads the filter config from FILTER_CONFIG_PATH, falling back to
// configs/filter.yaml.
func Load() (*FilterConfig, error) {
	path := os.Getenv("FILTER_CONFIG_PATH")
	if path == "" {
		path = "configs/filter.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg FilterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse filter config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *FilterConfig) {
	if cfg.Rules.MinTextLength == 0 {
		cfg.Rules.MinTextLength = 20
	}
	if cfg.AI.MinQualityScore == 0 {
		cfg.AI.MinQualityScore = 60.0
	}
	if cfg.AI.BatchSize == 0 {
		cfg.AI.BatchSize = 5
	}
	if cfg.AI.MaxConcurrent == 0 {
		cfg.AI.MaxConcurrent = 3
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
	if cfg.AI.OnFailure == "" {
		cfg.AI.OnFailure = models.OnFailurePass
	}
}

func (c *FilterConfig) Validate() error {
	if c.AI.BatchSize < 1 {
		return fmt.Errorf("ai.batch_size must be positive, got %d", c.AI.BatchSize)
	}
	if c.AI.MaxConcurrent < 1 {
		return fmt.Errorf("ai.max_concurrent must be positive, got %d", c.AI.MaxConcurrent)
	}
	if c.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai.timeout_seconds must be positive, got %f", c.AI.TimeoutSeconds)
	}
	if c.AI.OnFailure != models.OnFailurePass && c.AI.OnFailure != models.OnFailureFilter {
		return fmt.Errorf("ai.on_failure must be %q or %q, got %q",
			models.OnFailurePass, models.OnFailureFilter, c.AI.OnFailure)
	}
	return nil
}
