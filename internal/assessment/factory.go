package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"docval/internal/llm"
)

// backendKind pairs a zero-value backend, asked which providers it serves,
// with the constructor for that backend.
type backendKind struct {
	proto Backend
	build func(ctx context.Context, provider string, cfg Config) (Backend, error)
}

var (
	genkitKind = backendKind{proto: &GenkitBackend{}, build: buildGenkitBackend}
	chatKind   = backendKind{proto: &ChatBackend{}, build: buildChatBackend}

	backendKinds = []backendKind{genkitKind, chatKind}
)

// selectBackendKind returns the first kind supporting provider. A provider
// with no preset but an explicit base URL is treated as OpenAI-compatible.
func selectBackendKind(provider string, cfg Config) (backendKind, bool) {
	for _, kind := range backendKinds {
		if kind.proto.Supports(provider) {
			return kind, true
		}
	}
	if cfg.BaseURL != "" {
		return chatKind, true
	}
	return backendKind{}, false
}

// NewBackend builds the backend cfg.Provider names. A disabled provider or a
// missing credential yields a nil backend and no error: validation then runs
// rule-only. Unknown providers are reported as errors.
func NewBackend(ctx context.Context, cfg Config) (Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" || provider == ProviderNone {
		return nil, nil
	}

	kind, ok := selectBackendKind(provider, cfg)
	if !ok {
		return nil, fmt.Errorf("unknown AI provider %q", provider)
	}
	return kind.build(ctx, provider, cfg)
}

func buildGenkitBackend(ctx context.Context, _ string, cfg Config) (Backend, error) {
	upstream := strings.ToLower(strings.TrimSpace(cfg.Upstream))
	if upstream == "" {
		upstream = llm.ProviderOpenAI
	}
	client, err := newChatClient(upstream, cfg)
	if err != nil || client == nil {
		return nil, err
	}
	gc, err := llm.RegisterChatModel(ctx, upstream, client)
	if err != nil {
		return nil, fmt.Errorf("register genkit model: %w", err)
	}
	slog.Info("Structured assessment enabled", "backend", ProviderGenkit, "upstream", upstream)
	return NewGenkitBackend(upstream, gc, cfg), nil
}

func buildChatBackend(_ context.Context, provider string, cfg Config) (Backend, error) {
	client, err := newChatClient(provider, cfg)
	if err != nil || client == nil {
		return nil, err
	}
	slog.Info("Structured assessment enabled", "backend", provider, "model", client.Config().DefaultModel)
	return NewChatBackend(provider, client, cfg), nil
}

func newChatClient(provider string, cfg Config) (*llm.Client, error) {
	preset, ok := llm.DefaultProviders()[provider]
	if !ok && cfg.BaseURL == "" {
		return nil, fmt.Errorf("unknown AI provider %q", provider)
	}

	apiKey := cfg.APIKeys[provider]
	if apiKey == "" {
		slog.Warn("AI provider credentials not found, running rule-only",
			"provider", provider,
			"env", preset.EnvKey,
		)
		return nil, nil
	}

	client, err := llm.NewClient(&llm.Config{
		Provider:     provider,
		APIKey:       apiKey,
		BaseURL:      cfg.BaseURL,
		DefaultModel: cfg.LLMModel,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.Attempts,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", provider, err)
	}
	return client, nil
}
