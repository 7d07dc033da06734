package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// GenkitCompleter routes chat requests through a Genkit model registry. The
// registered model forwards to an upstream Completer, usually *Client.
type GenkitCompleter struct {
	g    *genkit.Genkit
	name string
}

// ModelName returns the registry name for a provider, e.g. "docval/openai".
func ModelName(provider string) string {
	return "docval/" + provider
}

// RegisterChatModel initializes Genkit and defines a model named
// ModelName(provider) backed by upstream.
func RegisterChatModel(ctx context.Context, provider string, upstream Completer) (*GenkitCompleter, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream completer is required")
	}

	g := genkit.Init(ctx)
	name := ModelName(provider)

	genkit.DefineModel(
		g,
		name,
		&ai.ModelOptions{
			Label: fmt.Sprintf("%s chat completions", provider),
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
			},
		},
		func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			text, err := upstream.Complete(ctx, requestFromMessages(req.Messages))
			if err != nil {
				return nil, err
			}
			return &ai.ModelResponse{
				Request: req,
				Message: &ai.Message{
					Role:    ai.RoleModel,
					Content: []*ai.Part{ai.NewTextPart(text)},
				},
			}, nil
		},
	)

	return &GenkitCompleter{g: g, name: name}, nil
}

// Complete implements Completer by generating through the registered model.
func (gc *GenkitCompleter) Complete(ctx context.Context, req Request) (string, error) {
	model := genkit.LookupModel(gc.g, gc.name)
	if model == nil {
		return "", fmt.Errorf("genkit model %s not registered", gc.name)
	}

	var messages []*ai.Message
	if req.System != "" {
		messages = append(messages, &ai.Message{
			Role:    ai.RoleSystem,
			Content: []*ai.Part{ai.NewTextPart(req.System)},
		})
	}
	messages = append(messages, &ai.Message{
		Role:    ai.RoleUser,
		Content: []*ai.Part{ai.NewTextPart(req.Prompt)},
	})

	resp, err := model.Generate(ctx, &ai.ModelRequest{Messages: messages}, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// requestFromMessages folds Genkit messages back into a single-turn request.
// The upstream model name comes from its own configuration.
func requestFromMessages(messages []*ai.Message) Request {
	var system, prompt []string
	for _, m := range messages {
		var b strings.Builder
		for _, p := range m.Content {
			if p.IsText() {
				b.WriteString(p.Text)
			}
		}
		if m.Role == ai.RoleSystem {
			system = append(system, b.String())
		} else {
			prompt = append(prompt, b.String())
		}
	}
	return Request{
		System: strings.Join(system, "\n\n"),
		Prompt: strings.Join(prompt, "\n\n"),
	}
}
