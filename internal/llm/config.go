package llm

import (
	"fmt"
	"time"
)

// Supported providers.
const (
	ProviderOpenAI     = "openai"
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
)

// Config contains configuration for the LLM client.
type Config struct {
	// Provider selects the preset used to fill BaseURL and DefaultModel
	Provider string

	// APIKey is the provider API key
	APIKey string

	// BaseURL is the OpenAI-compatible API base URL
	// Default: the provider preset
	BaseURL string

	// DefaultModel is the model to use when not specified
	// Example: gpt-4o-mini
	DefaultModel string

	// Timeout is the HTTP request timeout
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the number of generation attempts for structured output
	// Default: 1
	MaxRetries int

	// Temperature and MaxTokens are sent with every chat request
	// Default: 0.3 and 2000
	Temperature float64
	MaxTokens   int
}

// Validate checks that required config fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("APIKey is required")
	}

	if c.BaseURL == "" {
		if _, ok := DefaultProviders()[c.Provider]; !ok {
			return fmt.Errorf("BaseURL is required for provider %q", c.Provider)
		}
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("MaxRetries must not be negative")
	}

	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if preset, ok := DefaultProviders()[c.Provider]; ok {
		if c.BaseURL == "" {
			c.BaseURL = preset.BaseURL
		}
		if c.DefaultModel == "" {
			c.DefaultModel = preset.DefaultModel
		}
	}

	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = 1
	}

	if c.Temperature == 0 {
		c.Temperature = 0.3
	}

	if c.MaxTokens == 0 {
		c.MaxTokens = 2000
	}
}

// ProviderConfig describes an OpenAI-compatible endpoint.
type ProviderConfig struct {
	// Name is the provider identifier
	Name string

	// BaseURL is the chat API root
	BaseURL string

	// DefaultModel is used when no model is configured
	DefaultModel string

	// EnvKey is the environment variable holding the API key
	EnvKey string
}

// DefaultProviders returns the known provider presets.
func DefaultProviders() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		ProviderOpenAI: {
			Name:         ProviderOpenAI,
			BaseURL:      "https://api.openai.com/v1",
			DefaultModel: "gpt-4o-mini",
			EnvKey:       "OPENAI_API_KEY",
		},
		ProviderGroq: {
			Name:         ProviderGroq,
			BaseURL:      "https://api.groq.com/openai/v1",
			DefaultModel: "llama-3.1-70b-versatile",
			EnvKey:       "GROQ_API_KEY",
		},
		ProviderOpenRouter: {
			Name:         ProviderOpenRouter,
			BaseURL:      "https://openrouter.ai/api/v1",
			DefaultModel: "openai/gpt-4o-mini",
			EnvKey:       "OPENROUTER_API_KEY",
		},
	}
}
