package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/pkg/config"
)

// Generator is the minimal text-completion contract the analysis
// pipeline needs. Both provider clients implement it, and tests swap
// in fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the configured provider client. It returns a nil
// Generator when no provider is configured or the API key is missing;
// the pipeline then runs in pattern-only mode. The returned cleanup
// func is always safe to call.
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Generator, func(), error) {
	noop := func() {}

	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("gemini provider selected but GEMINI_API_KEY is empty, ai extraction disabled")
			return nil, noop, nil
		}
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("create gemini client: %w", err)
		}
		return client, func() { _ = client.Close() }, nil
	case "gigachat":
		if cfg.GigaChatAPIKey == "" {
			logger.Warn("gigachat provider selected but GIGACHAT_API_KEY is empty, ai extraction disabled")
			return nil, noop, nil
		}
		client, err := NewGigaChatClient(ctx, cfg.GigaChatAPIKey, cfg.GigaChatScope, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("create gigachat client: %w", err)
		}
		return client, func() { client.Close() }, nil
	case "", "none":
		logger.Info("no llm provider configured, ai extraction disabled")
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
