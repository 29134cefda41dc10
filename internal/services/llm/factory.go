package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
)

// NewLLMService creates the configured LLM service implementation.
//
// Provider "gemini" serves both embeddings and chat from one client.
// Provider "claude" serves chat from Anthropic but still embeds with
// Gemini, since Anthropic offers no embedding API; the composite below
// routes each call to the right client.
func NewLLMService(config *common.Config, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) (interfaces.LLMService, error) {
	logger.Info().Str("provider", config.LLM.Provider).Msg("Initializing LLM service")

	gemini, err := NewGeminiService(config, kvStorage, logger)
	if err != nil {
		return nil, err
	}

	switch config.LLM.Provider {
	case "gemini":
		return gemini, nil

	case "claude":
		claude, err := NewClaudeService(config, kvStorage, logger)
		if err != nil {
			gemini.Close()
			return nil, err
		}
		return &claudeWithGeminiEmbeddings{embedder: gemini, chatter: claude}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.LLM.Provider)
	}
}

// claudeWithGeminiEmbeddings composes Claude chat with Gemini embeddings.
type claudeWithGeminiEmbeddings struct {
	embedder *GeminiService
	chatter  *ClaudeService
}

// Compile-time interface assertion
var _ interfaces.LLMService = (*claudeWithGeminiEmbeddings)(nil)

func (c *claudeWithGeminiEmbeddings) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.embedder.Embed(ctx, text)
}

func (c *claudeWithGeminiEmbeddings) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return c.chatter.Chat(ctx, messages)
}

func (c *claudeWithGeminiEmbeddings) HealthCheck(ctx context.Context) error {
	if err := c.embedder.HealthCheck(ctx); err != nil {
		return fmt.Errorf("embedding provider unhealthy: %w", err)
	}
	if err := c.chatter.HealthCheck(ctx); err != nil {
		return fmt.Errorf("chat provider unhealthy: %w", err)
	}
	return nil
}

func (c *claudeWithGeminiEmbeddings) Provider() interfaces.LLMProvider {
	return interfaces.LLMProviderClaude
}

func (c *claudeWithGeminiEmbeddings) Close() error {
	c.chatter.Close()
	return c.embedder.Close()
}
