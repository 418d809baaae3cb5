package config

import (
	"fmt"
	"os"

	"github.com/homelens/inspect-agent/internal/confidence"
	"gopkg.in/yaml.v3"
)

func LoadKnowledgeConfig() (*KnowledgeConfig, error) {

	path := os.Getenv("KNOWLEDGE_CONFIG_PATH")
	if path == "" {
		path = "configs/knowledge.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg KnowledgeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *KnowledgeConfig) {
	if cfg.Knowledge.MaxChars == 0 {
		cfg.Knowledge.MaxChars = 12000
	}

	defaults := confidence.DefaultPolicy()
	if cfg.Policy == (confidence.Policy{}) {
		cfg.Policy = defaults
		return
	}
	if cfg.Policy.MaxScore == 0 {
		cfg.Policy.MaxScore = defaults.MaxScore
	}
	if cfg.Policy.ReviewThreshold == 0 {
		cfg.Policy.ReviewThreshold = defaults.ReviewThreshold
	}
}

func (c *KnowledgeConfig) Validate() error {
	if c.Knowledge.MaxChars < 0 {
		return fmt.Errorf("knowledge.maxChars must be non-negative, got %d", c.Knowledge.MaxChars)
	}
	if c.Policy.MinScore > c.Policy.MaxScore {
		return fmt.Errorf("policy.minScore %d exceeds policy.maxScore %d", c.Policy.MinScore, c.Policy.MaxScore)
	}
	if c.Policy.ReviewThreshold < 0 || c.Policy.ReviewThreshold > 100 {
		return fmt.Errorf("policy.reviewThreshold must be in [0,100], got %d", c.Policy.ReviewThreshold)
	}
	return nil
}
