package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/homelens/inspect-agent/internal/archive"
	"github.com/homelens/inspect-agent/internal/confidence"
	"github.com/homelens/inspect-agent/internal/config"
	"github.com/homelens/inspect-agent/internal/executor"
	"github.com/homelens/inspect-agent/internal/invoker"
	"github.com/homelens/inspect-agent/internal/knowledge"
	"github.com/homelens/inspect-agent/internal/llm/bedrock"
	"github.com/homelens/inspect-agent/internal/prompt"
	"github.com/homelens/inspect-agent/internal/report"
	"github.com/homelens/inspect-agent/internal/resolver"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion       string
	PrimaryModelID  string
	FallbackModelID string
	APIToken        string
	RedisAddr       string
	RedisPassword   string
	Port            string
}

type Dependencies struct {
	Evaluator *executor.Evaluator
	Renderer  *report.Renderer
	Archiver  archive.Archiver
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		PrimaryModelID:  getEnv("PRIMARY_MODEL_ID", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		FallbackModelID: getEnv("FALLBACK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		APIToken:        getEnv("ASSESS_API_TOKEN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		Port:            getEnv("INSPECT_AGENT_API_PORT", "18082"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	bedrockClient, err := bedrock.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	// Knowledge sources and confidence policy from YAML
	knowledgeConfig, err := config.LoadKnowledgeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge config: %w", err)
	}

	store := knowledge.NewStore(
		&knowledge.FileFetcher{},
		knowledge.NewHTTPFetcher(),
		knowledgeConfig.Knowledge.MaxChars,
		logger,
	)

	builder, err := prompt.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt template: %w", err)
	}

	// Only the primary model is known to honor the schema constraint.
	capabilities := map[string]invoker.ModelCapabilities{
		cfg.PrimaryModelID: {SupportsSchema: true},
	}
	modelInvoker := invoker.NewInvoker(bedrockClient, prompt.SystemRules, cfg.FallbackModelID, capabilities, logger)

	eval := executor.NewEvaluator(
		store,
		builder,
		modelInvoker,
		resolver.NewResolver(logger),
		knowledgeConfig.Knowledge.Sources,
		cfg.PrimaryModelID,
		logger,
	)

	engine := confidence.NewEngine(knowledgeConfig.Policy)
	renderer := report.NewRenderer(engine)

	var archiver archive.Archiver = archive.NoopArchiver{}
	if cfg.RedisAddr != "" {
		redisClient, err := archive.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		archiver = archive.NewRedisArchiver(redisClient)
	}

	return &Dependencies{
		Evaluator: eval,
		Renderer:  renderer,
		Archiver:  archiver,
		Logger:    logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
