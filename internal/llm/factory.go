package llm

import (
	"context"
	"fmt"

	"github.com/decisionmotor/maturity/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → timeout → retry → audit logging → vendor.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	v := cfg.Vendor()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(v)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(v)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(v)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, v)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, timeout: cfg.Timeout}
	}
	return p, nil
}

// NewProviderFromEnv resolves configuration from MATURITY_* variables, then
// from the vendors' own key variables. It returns (nil, nil) when no
// provider is configured at all.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		cfg, ok = DiscoverConfig()
	}
	if !ok {
		return nil, nil
	}
	return NewProvider(ctx, cfg, events)
}
