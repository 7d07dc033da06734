package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"docval/internal/assessment"
	"docval/internal/consolidation"
	"docval/internal/llm"
	"docval/internal/scoring"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string // debug, info, warn, error

	// Structured assessment
	AIProvider       string            // openai, groq, openrouter, genkit, none
	AIGenkitUpstream string            // chat provider behind genkit
	APIKeys          map[string]string // provider -> key
	AIModel          string            // empty selects the provider preset
	AIBaseURL        string
	AITimeout        time.Duration
	AIMaxAttempts    int
	MaxExcerptChars  int

	ModelsDir string

	Scoring scoring.Config
	Policy  consolidation.Config
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	scoreDefaults := scoring.DefaultConfig()
	policyDefaults := consolidation.DefaultConfig()

	cfg := &Config{
		LogLevel:         strings.ToLower(logLevel),
		AIProvider:       strings.ToLower(getEnvOrDefault("AI_PROVIDER", llm.ProviderOpenAI)),
		AIGenkitUpstream: strings.ToLower(getEnvOrDefault("AI_GENKIT_UPSTREAM", llm.ProviderOpenAI)),
		APIKeys:          make(map[string]string),
		AIModel:          os.Getenv("AI_MODEL"),
		AIBaseURL:        os.Getenv("AI_BASE_URL"),
		ModelsDir:        getEnvOrDefault("MODELS_DIR", "models"),
	}

	for name, preset := range llm.DefaultProviders() {
		if key := os.Getenv(preset.EnvKey); key != "" {
			cfg.APIKeys[name] = key
		}
	}

	var err error
	if cfg.AITimeout, err = durationEnv("AI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.AIMaxAttempts, err = intEnv("AI_MAX_ATTEMPTS", 1); err != nil {
		return nil, err
	}
	if cfg.MaxExcerptChars, err = intEnv("MAX_EXCERPT_CHARS", llm.DefaultMaxExcerptChars); err != nil {
		return nil, err
	}
	if cfg.Scoring.CurrencyThreshold, err = floatEnv("CURRENCY_THRESHOLD", scoreDefaults.CurrencyThreshold); err != nil {
		return nil, err
	}
	if cfg.Scoring.RequiredCount, err = intEnv("REQUIRED_COUNT", scoreDefaults.RequiredCount); err != nil {
		return nil, err
	}
	if cfg.Scoring.TimeWindowYears, err = intEnv("TIME_WINDOW_YEARS", scoreDefaults.TimeWindowYears); err != nil {
		return nil, err
	}
	if cfg.Policy.MandatoryCoverageRatio, err = floatEnv("MANDATORY_COVERAGE_RATIO", policyDefaults.MandatoryCoverageRatio); err != nil {
		return nil, err
	}
	if cfg.Policy.AIOverrideMissingCeiling, err = intEnv("AI_OVERRIDE_MISSING_CEILING", policyDefaults.AIOverrideMissingCeiling); err != nil {
		return nil, err
	}

	if cfg.AIMaxAttempts < 1 {
		return nil, &ValidationError{Field: "AI_MAX_ATTEMPTS", Message: "must be at least 1"}
	}
	if cfg.MaxExcerptChars < 1 {
		return nil, &ValidationError{Field: "MAX_EXCERPT_CHARS", Message: "must be positive"}
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, &ValidationError{Field: "scoring", Message: err.Error(), Err: err}
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, &ValidationError{Field: "policy", Message: err.Error(), Err: err}
	}

	// Missing API keys are not an error here; assessment falls back to
	// rule-only validation.
	return cfg, nil
}

// AssessmentConfig returns the settings for assessment.NewBackend.
func (c *Config) AssessmentConfig() assessment.Config {
	return assessment.Config{
		Provider: c.AIProvider,
		Upstream: c.AIGenkitUpstream,
		APIKeys:  c.APIKeys,
		BaseURL:  c.AIBaseURL,
		LLMModel: c.AIModel,
		Timeout:  c.AITimeout,
		Attempts: c.AIMaxAttempts,
		Prompt: llm.PromptOptions{
			MaxExcerptChars:   c.MaxExcerptChars,
			CurrencyThreshold: c.Scoring.CurrencyThreshold,
			RequiredCount:     c.Scoring.RequiredCount,
			TimeWindowYears:   c.Scoring.TimeWindowYears,
		},
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", raw), Err: err}
	}
	return v, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{Field: key, Message: fmt.Sprintf("invalid number %q", raw), Err: err}
	}
	return v, nil
}

// durationEnv accepts Go durations ("90s") or a bare number of seconds.
func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw), Err: err}
	}
	return d, nil
}
