package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/config"
	"github.com/socialpulse/postfilter/internal/llm"
	"github.com/socialpulse/postfilter/internal/llm/bedrock"
	"github.com/socialpulse/postfilter/internal/llm/gpt"
	"github.com/socialpulse/postfilter/internal/pipeline"
	"github.com/socialpulse/postfilter/internal/rules"
	"github.com/socialpulse/postfilter/internal/scorer"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
	DBPath          string
	RedisAddr       string
	RedisPassword   string
}

type Dependencies struct {
	Filter *pipeline.Pipeline
	Rules  *rules.Engine
	Config *config.FilterConfig
	Logger *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		DBPath:          getEnv("FILTER_DB_PATH", "postfilter.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	// Filter thresholds come from YAML, provider credentials from env
	filterConfig, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load filter config: %w", err)
	}

	ruleEngine := rules.NewEngine(filterConfig.Rules)

	var aiScorer pipeline.AIScorer
	if filterConfig.AI.Enabled {
		llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		aiScorer = scorer.NewScorer(llmClient, filterConfig.AI, logger)
	}

	filter := pipeline.New(*filterConfig, ruleEngine, aiScorer, logger)

	return &Dependencies{
		Filter: filter,
		Rules:  ruleEngine,
		Config: filterConfig,
		Logger: logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
