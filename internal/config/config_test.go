package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/socialpulse/postfilter/internal/models"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("FILTER_CONFIG_PATH", path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, `
enabled: true
rules:
  filter_media_only: true
ai:
  enabled: true
  model: claude-sonnet
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rules.MinTextLength != 20 {
		t.Errorf("MinTextLength: %d, want 20", cfg.Rules.MinTextLength)
	}
	if cfg.AI.MinQualityScore != 60.0 {
		t.Errorf("MinQualityScore: %f, want 60", cfg.AI.MinQualityScore)
	}
	if cfg.AI.BatchSize != 5 {
		t.Errorf("BatchSize: %d, want 5", cfg.AI.BatchSize)
	}
	if cfg.AI.MaxConcurrent != 3 {
		t.Errorf("MaxConcurrent: %d, want 3", cfg.AI.MaxConcurrent)
	}
	if cfg.AI.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds: %f, want 30", cfg.AI.TimeoutSeconds)
	}
	if cfg.AI.OnFailure != models.OnFailurePass {
		t.Errorf("OnFailure: %s, want pass", cfg.AI.OnFailure)
	}
	if cfg.AI.Model != "claude-sonnet" {
		t.Errorf("Model: %s, want claude-sonnet", cfg.AI.Model)
	}
}

func TestLoad_ExplicitValues(t *testing.T) {
	writeConfig(t, `
enabled: true
rules:
  min_text_length: 10
  filter_media_only: true
  filter_reply_without_context: true
  filter_external_references: true
ai:
  enabled: true
  min_quality_score: 75
  batch_size: 10
  max_concurrent: 4
  timeout_seconds: 12.5
  on_failure: filter
  retry: true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rules.MinTextLength != 10 {
		t.Errorf("MinTextLength: %d, want 10", cfg.Rules.MinTextLength)
	}
	if cfg.AI.MinQualityScore != 75 {
		t.Errorf("MinQualityScore: %f, want 75", cfg.AI.MinQualityScore)
	}
	if cfg.AI.TimeoutSeconds != 12.5 {
		t.Errorf("TimeoutSeconds: %f, want 12.5", cfg.AI.TimeoutSeconds)
	}
	if cfg.AI.OnFailure != models.OnFailureFilter {
		t.Errorf("OnFailure: %s, want filter", cfg.AI.OnFailure)
	}
	if !cfg.AI.Retry {
		t.Error("Retry: false, want true")
	}
}

func TestLoad_RejectsBadOnFailure(t *testing.T) {
	writeConfig(t, `
enabled: true
ai:
  on_failure: explode
`)

	if _, err := Load(); err == nil {
		t.Error("expected validation error for bad on_failure")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FILTER_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Enabled || !cfg.AI.Enabled {
		t.Error("default config should enable both stages")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if !cfg.Rules.FilterMediaOnly || !cfg.Rules.FilterReplyWithoutContext || !cfg.Rules.FilterExternalReferences {
		t.Error("default config should enable all rule toggles")
	}
}
