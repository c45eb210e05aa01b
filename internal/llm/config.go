package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures one provider.
type Config struct {
	Provider string

	// Per-provider credentials and model, keyed by provider name.
	Vendors map[string]VendorConfig

	Retry   RetryConfig
	Timeout time.Duration // per Generate call, retries included
}

// VendorConfig holds the credentials and model for one provider.
type VendorConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in models and retry policy.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Vendors: map[string]VendorConfig{
			ProviderAnthropic:  {Model: "claude-haiku"},
			ProviderOpenAI:     {Model: "gpt-4o-mini"},
			ProviderGemini:     {Model: "gemini-flash"},
			ProviderOpenRouter: {Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// Vendor returns the settings for the selected provider.
func (c Config) Vendor() VendorConfig {
	return c.Vendors[c.Provider]
}

// envName maps a provider to its MATURITY_<NAME>_ prefix.
var envName = map[string]string{
	ProviderAnthropic:  "ANTHROPIC",
	ProviderOpenAI:     "OPENAI",
	ProviderGemini:     "GEMINI",
	ProviderOpenRouter: "OPENROUTER",
}

// ConfigFromEnv reads MATURITY_LLM_PROVIDER and the MATURITY_<PROVIDER>_API_KEY,
// _MODEL and _BASE_URL variables on top of DefaultConfig. Without an explicit
// provider, the first one with a MATURITY_ key wins. It reports false when
// nothing selects a provider.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()
	for provider, name := range envName {
		v := cfg.Vendors[provider]
		if k := os.Getenv("MATURITY_" + name + "_API_KEY"); k != "" {
			v.APIKey = k
		}
		if m := os.Getenv("MATURITY_" + name + "_MODEL"); m != "" {
			v.Model = m
		}
		if u := os.Getenv("MATURITY_" + name + "_BASE_URL"); u != "" {
			v.BaseURL = u
		}
		cfg.Vendors[provider] = v
	}

	if p := os.Getenv("MATURITY_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg, true
	}
	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		if cfg.Vendors[p].APIKey != "" {
			cfg.Provider = p
			return cfg, true
		}
	}
	return cfg, false
}

// DiscoverConfig probes the vendors' standard API key variables in order
// (Anthropic, OpenAI, Gemini, OpenRouter) and selects the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		provider string
		env      string
	}{
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGemini, "GEMINI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			v := cfg.Vendors[p.provider]
			v.APIKey = k
			cfg.Vendors[p.provider] = v
			cfg.Provider = p.provider
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	name, ok := envName[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Vendor().APIKey == "" {
		return fmt.Errorf("MATURITY_%s_API_KEY is required for the %s provider", name, c.Provider)
	}
	return nil
}
