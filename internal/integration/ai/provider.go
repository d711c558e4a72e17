package ai

import (
	"context"
	"fmt"

	"github.com/zant/accident-backend/internal/config"
	"go.uber.org/zap"
)

// Provider is a single text-generation backend. Implementations submit one
// (system prompt, user message) pair and return the model's raw text reply.
// Which provider is used is fixed by deployment configuration.
type Provider interface {
	// Name returns the configuration selector of the provider.
	Name() string

	// Configured reports whether an API credential is present. When it is
	// not, callers must not invoke Generate and should fall back.
	Configured() bool

	// Generate submits the prompt and returns the model's raw text reply.
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// NewProvider builds the provider selected by cfg.AIProvider.
func NewProvider(cfg *config.Config, logger *zap.Logger) (Provider, error) {
	switch cfg.AIProvider {
	case config.ProviderPllum:
		return NewPllumProvider(cfg.PllumCfg, logger), nil
	case config.ProviderGemini:
		return NewGeminiProvider(cfg.GeminiCfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AIProvider)
	}
}
