// Package assessment asks an external text-generation service to classify a
// document and turns every failure into a degraded, never fatal, result.
package assessment

import (
	"context"
	"errors"
	"slices"
	"time"

	"docval/internal/llm"
	"docval/internal/llm/tasks"
	"docval/pkg/schema"
)

// ProviderGenkit routes an upstream chat provider through a Genkit registry.
const ProviderGenkit = "genkit"

// ProviderNone disables structured assessment.
const ProviderNone = "none"

// Backend produces a structured assessment of a document.
type Backend interface {
	Name() string
	Supports(provider string) bool
	Assess(ctx context.Context, text string, model *schema.ComplianceModel) (*schema.AIResult, error)
}

// Config selects and tunes a backend.
type Config struct {
	Provider string
	// Upstream is the chat provider used behind Genkit
	Upstream string
	APIKeys  map[string]string
	BaseURL  string
	LLMModel string
	Timeout  time.Duration
	Attempts int
	Prompt   llm.PromptOptions
}

// chatProviders are the OpenAI-compatible presets.
var chatProviders = []string{llm.ProviderOpenAI, llm.ProviderGroq, llm.ProviderOpenRouter}

// ChatBackend calls an OpenAI-compatible chat API directly.
type ChatBackend struct {
	provider  string
	completer llm.Completer
	cfg       Config
}

// NewChatBackend wraps completer, which is normally an *llm.Client.
func NewChatBackend(provider string, completer llm.Completer, cfg Config) *ChatBackend {
	return &ChatBackend{provider: provider, completer: completer, cfg: cfg}
}

func (b *ChatBackend) Name() string { return b.provider }

func (b *ChatBackend) Supports(provider string) bool {
	return slices.Contains(chatProviders, provider)
}

func (b *ChatBackend) Assess(ctx context.Context, text string, model *schema.ComplianceModel) (*schema.AIResult, error) {
	return assess(ctx, b.Name(), b.completer, b.cfg, text, model)
}

// GenkitBackend sends the same request through a Genkit model.
type GenkitBackend struct {
	upstream  string
	completer llm.Completer
	cfg       Config
}

// NewGenkitBackend wraps a completer registered with llm.RegisterChatModel.
func NewGenkitBackend(upstream string, completer llm.Completer, cfg Config) *GenkitBackend {
	return &GenkitBackend{upstream: upstream, completer: completer, cfg: cfg}
}

func (b *GenkitBackend) Name() string { return ProviderGenkit + ":" + b.upstream }

func (b *GenkitBackend) Supports(provider string) bool {
	return provider == ProviderGenkit
}

func (b *GenkitBackend) Assess(ctx context.Context, text string, model *schema.ComplianceModel) (*schema.AIResult, error) {
	return assess(ctx, b.Name(), b.completer, b.cfg, text, model)
}

func assess(ctx context.Context, name string, completer llm.Completer, cfg Config, text string, model *schema.ComplianceModel) (*schema.AIResult, error) {
	out, err := tasks.ExecuteAssessmentTask(completer, ctx, &tasks.AssessmentInput{
		Model:    model,
		Text:     text,
		Options:  cfg.Prompt,
		LLMModel: cfg.LLMModel,
		Attempts: cfg.Attempts,
	})
	if err != nil {
		return nil, &Error{Kind: classify(err), Backend: name, Err: err}
	}
	return out.ToAIResult(), nil
}

func classify(err error) Kind {
	var llmErr *llm.LLMError
	if errors.As(err, &llmErr) && llmErr.Retryable() {
		return KindDecode
	}
	return KindCall
}
