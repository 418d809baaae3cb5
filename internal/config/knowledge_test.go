package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("KNOWLEDGE_CONFIG_PATH", path)
}

func TestLoadKnowledgeConfig_Full(t *testing.T) {
	writeConfig(t, `
knowledge:
  sources:
    - /etc/knowledge/iaq.md
    - https://example.com/docs/heaters.md
  maxChars: 8000
policy:
  lowImageQualityPenalty: 20
  anglePenalty: 15
  labelCuePenalty: 10
  codeSensitivePenalty: 10
  minScore: 5
  maxScore: 95
  reviewThreshold: 70
`)

	cfg, err := LoadKnowledgeConfig()
	if err != nil {
		t.Fatalf("LoadKnowledgeConfig failed: %v", err)
	}

	if len(cfg.Knowledge.Sources) != 2 {
		t.Errorf("Expected 2 sources, got %d", len(cfg.Knowledge.Sources))
	}
	if cfg.Knowledge.MaxChars != 8000 {
		t.Errorf("Expected maxChars 8000, got %d", cfg.Knowledge.MaxChars)
	}
	if cfg.Policy.ReviewThreshold != 70 {
		t.Errorf("Expected threshold 70, got %d", cfg.Policy.ReviewThreshold)
	}
}

func TestLoadKnowledgeConfig_Defaults(t *testing.T) {
	writeConfig(t, `
knowledge:
  sources:
    - /etc/knowledge/iaq.md
`)

	cfg, err := LoadKnowledgeConfig()
	if err != nil {
		t.Fatalf("LoadKnowledgeConfig failed: %v", err)
	}

	if cfg.Knowledge.MaxChars != 12000 {
		t.Errorf("Expected default maxChars 12000, got %d", cfg.Knowledge.MaxChars)
	}
	if cfg.Policy.LowImageQualityPenalty != 20 || cfg.Policy.ReviewThreshold != 70 {
		t.Errorf("Expected default policy, got %+v", cfg.Policy)
	}
	if cfg.Policy.MinScore != 5 || cfg.Policy.MaxScore != 95 {
		t.Errorf("Expected default clamp range, got %+v", cfg.Policy)
	}
}

func TestLoadKnowledgeConfig_InvalidThreshold(t *testing.T) {
	writeConfig(t, `
knowledge:
  sources: []
policy:
  minScore: 5
  maxScore: 95
  reviewThreshold: 150
`)

	if _, err := LoadKnowledgeConfig(); err == nil {
		t.Error("Expected validation error for out-of-range threshold")
	}
}

func TestLoadKnowledgeConfig_MissingFile(t *testing.T) {
	t.Setenv("KNOWLEDGE_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := LoadKnowledgeConfig(); err == nil {
		t.Error("Expected error for missing config file")
	}
}
