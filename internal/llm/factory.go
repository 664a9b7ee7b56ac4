package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped with audit
// and retry middleware: caller → retry → audit → base.
func NewProvider(ctx context.Context, cfg Config, sink AuditSink, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	audited := WithAudit(base, sink, logger)
	return WithRetry(audited, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from ALGORITY_* env vars,
// falling back to probing the standard provider key vars.
func NewProviderFromEnv(ctx context.Context, sink AuditSink, logger *zap.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, sink, logger)
}
