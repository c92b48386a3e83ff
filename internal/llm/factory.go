package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the configured backend and wraps it as
//
//	timeout → retry → recording → backend
//
// rec may be nil, in which case calls are not recorded.
func NewProvider(ctx context.Context, cfg Config, rec EventRecorder, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initialize %s provider: %w", cfg.Provider, err)
	}

	mw := []Middleware{WithTimeout(cfg.Timeout), WithRetry(cfg.Retry, log)}
	if rec != nil {
		mw = append(mw, WithRecording(cfg.Provider, rec, log))
	}
	return Chain(base, mw...), nil
}
