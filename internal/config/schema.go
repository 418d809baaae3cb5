package config

import "github.com/homelens/inspect-agent/internal/confidence"

// KnowledgeConfig is the operator-controlled knowledge and policy file.
type KnowledgeConfig struct {
	Knowledge KnowledgeSection  `yaml:"knowledge"`
	Policy    confidence.Policy `yaml:"policy"`
}

type KnowledgeSection struct {
	// Sources are filesystem paths (leading /) or URLs, consulted in order.
	Sources  []string `yaml:"sources"`
	MaxChars int      `yaml:"maxChars"`
}
