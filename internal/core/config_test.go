package core

import (
	"errors"
	"testing"
	"time"
)

// configEnv lists every variable LoadConfig reads.
var configEnv = []string{
	"LOG_LEVEL", "DEBUG", "AI_PROVIDER", "AI_GENKIT_UPSTREAM",
	"OPENAI_API_KEY", "GROQ_API_KEY", "OPENROUTER_API_KEY",
	"AI_MODEL", "AI_BASE_URL", "AI_TIMEOUT", "AI_MAX_ATTEMPTS", "MODELS_DIR",
	"MAX_EXCERPT_CHARS", "CURRENCY_THRESHOLD", "REQUIRED_COUNT", "TIME_WINDOW_YEARS",
	"MANDATORY_COVERAGE_RATIO", "AI_OVERRIDE_MISSING_CEILING",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name             string
		envVars          map[string]string
		expectedLevel    string
		expectedProvider string
		expectedKeys     map[string]string
		expectedTimeout  time.Duration
	}{
		{
			name:             "default values",
			envVars:          map[string]string{},
			expectedLevel:    "info",
			expectedProvider: "openai",
			expectedKeys:     map[string]string{},
			expectedTimeout:  60 * time.Second,
		},
		{
			name: "debug flag overrides log level",
			envVars: map[string]string{
				"LOG_LEVEL": "warn",
				"DEBUG":     "1",
			},
			expectedLevel:    "debug",
			expectedProvider: "openai",
			expectedKeys:     map[string]string{},
			expectedTimeout:  60 * time.Second,
		},
		{
			name: "provider keys and timeout in seconds",
			envVars: map[string]string{
				"AI_PROVIDER":  "Groq",
				"GROQ_API_KEY": "gsk-test",
				"AI_TIMEOUT":   "15",
			},
			expectedLevel:    "info",
			expectedProvider: "groq",
			expectedKeys:     map[string]string{"groq": "gsk-test"},
			expectedTimeout:  15 * time.Second,
		},
		{
			name: "duration syntax",
			envVars: map[string]string{
				"AI_TIMEOUT":         "2m",
				"OPENROUTER_API_KEY": "or-key",
			},
			expectedLevel:    "info",
			expectedProvider: "openai",
			expectedKeys:     map[string]string{"openrouter": "or-key"},
			expectedTimeout:  2 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if cfg.LogLevel != tt.expectedLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expectedLevel)
			}
			if cfg.AIProvider != tt.expectedProvider {
				t.Errorf("AIProvider = %v, want %v", cfg.AIProvider, tt.expectedProvider)
			}
			if cfg.AITimeout != tt.expectedTimeout {
				t.Errorf("AITimeout = %v, want %v", cfg.AITimeout, tt.expectedTimeout)
			}
			if len(cfg.APIKeys) != len(tt.expectedKeys) {
				t.Errorf("APIKeys = %v, want %v", cfg.APIKeys, tt.expectedKeys)
			}
			for k, v := range tt.expectedKeys {
				if cfg.APIKeys[k] != v {
					t.Errorf("APIKeys[%s] = %v, want %v", k, cfg.APIKeys[k], v)
				}
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.ModelsDir != "models" {
		t.Errorf("ModelsDir = %v, want models", cfg.ModelsDir)
	}
	if cfg.AIGenkitUpstream != "openai" {
		t.Errorf("AIGenkitUpstream = %v, want openai", cfg.AIGenkitUpstream)
	}
	if cfg.AIMaxAttempts != 1 {
		t.Errorf("AIMaxAttempts = %v, want 1", cfg.AIMaxAttempts)
	}
	if cfg.MaxExcerptChars != 8000 {
		t.Errorf("MaxExcerptChars = %v, want 8000", cfg.MaxExcerptChars)
	}
	if cfg.Scoring.CurrencyThreshold != 2_500_000 || cfg.Scoring.RequiredCount != 5 || cfg.Scoring.TimeWindowYears != 5 {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}
	if cfg.Policy.MandatoryCoverageRatio != 0.70 || cfg.Policy.AIOverrideMissingCeiling != 2 {
		t.Errorf("Policy = %+v", cfg.Policy)
	}

	ac := cfg.AssessmentConfig()
	if ac.Prompt.RequiredCount != cfg.Scoring.RequiredCount || ac.Prompt.MaxExcerptChars != cfg.MaxExcerptChars {
		t.Errorf("AssessmentConfig().Prompt = %+v", ac.Prompt)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"AI_TIMEOUT", "soon"},
		{"AI_MAX_ATTEMPTS", "0"},
		{"REQUIRED_COUNT", "five"},
		{"CURRENCY_THRESHOLD", "muito"},
		{"MANDATORY_COVERAGE_RATIO", "1.5"},
		{"MAX_EXCERPT_CHARS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_VAR", "custom")
	t.Setenv("TEST_VAR_MISSING", "")

	if got := getEnvOrDefault("TEST_VAR", "default"); got != "custom" {
		t.Errorf("getEnvOrDefault() = %v, want custom", got)
	}
	if got := getEnvOrDefault("TEST_VAR_MISSING", "default"); got != "default" {
		t.Errorf("getEnvOrDefault() = %v, want default", got)
	}
}
