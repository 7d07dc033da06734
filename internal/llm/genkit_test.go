package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/genkit"
)

func TestGenkitCompleter(t *testing.T) {
	ctx := context.Background()
	upstream := &MockCompleter{Responses: []string{`{"name": "Genkit", "age": 1}`}}

	gc, err := RegisterChatModel(ctx, ProviderOpenAI, upstream)
	if err != nil {
		t.Fatalf("Failed to register model: %v", err)
	}

	if genkit.LookupModel(gc.g, ModelName(ProviderOpenAI)) == nil {
		t.Fatal("model not registered")
	}

	text, err := gc.Complete(ctx, Request{System: "be terse", Prompt: "hello"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != `{"name": "Genkit", "age": 1}` {
		t.Errorf("unexpected text %q", text)
	}

	reqs := upstream.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(reqs))
	}
	if reqs[0].System != "be terse" || reqs[0].Prompt != "hello" {
		t.Errorf("messages not forwarded: %+v", reqs[0])
	}

	result, err := GenerateStructured[TestOutput](gc, ctx, Request{Prompt: "p"}, 1, nil)
	if err != nil {
		t.Fatalf("GenerateStructured through genkit failed: %v", err)
	}
	if result.Name != "Genkit" {
		t.Errorf("expected Genkit, got %s", result.Name)
	}
}

func TestGenkitCompleterPropagatesErrors(t *testing.T) {
	upstream := &MockCompleter{Error: errors.New("boom")}

	gc, err := RegisterChatModel(context.Background(), ProviderGroq, upstream)
	if err != nil {
		t.Fatalf("Failed to register model: %v", err)
	}

	if _, err := gc.Complete(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestRegisterChatModelRequiresUpstream(t *testing.T) {
	if _, err := RegisterChatModel(context.Background(), ProviderOpenAI, nil); err == nil {
		t.Fatal("expected error for nil upstream")
	}
}
