package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docval/pkg/schema"
)

// Adapter is the never-failing boundary around a Backend.
type Adapter struct {
	backend Backend
}

// NewAdapter wraps backend, which may be nil.
func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Enabled reports whether a backend is configured.
func (a *Adapter) Enabled() bool {
	return a != nil && a.backend != nil
}

// Backend returns the wrapped backend name, or "" when disabled.
func (a *Adapter) Backend() string {
	if !a.Enabled() {
		return ""
	}
	return a.backend.Name()
}

// Assess returns the backend's result or a degraded one. Without a backend
// the degraded result carries no error note. Failures, panics included, are
// logged and noted under the "error" evidence key.
func (a *Adapter) Assess(ctx context.Context, text string, model *schema.ComplianceModel) (result *schema.AIResult) {
	if !a.Enabled() {
		slog.Debug("No assessment backend configured, returning empty result")
		return schema.DegradedAIResult()
	}

	defer func() {
		if r := recover(); r != nil {
			err := &Error{Kind: KindCall, Backend: a.backend.Name(), Err: fmt.Errorf("panic: %v", r)}
			slog.Error("Assessment backend panicked", "backend", a.backend.Name(), "panic", r)
			result = degraded(err)
		}
	}()

	res, err := a.backend.Assess(ctx, text, model)
	if err != nil {
		slog.Error("Structured assessment failed",
			"backend", a.backend.Name(),
			"kind", kindOf(err),
			"error", err.Error(),
		)
		return degraded(err)
	}
	if res == nil {
		return degraded(&Error{Kind: KindDecode, Backend: a.backend.Name(), Err: errors.New("empty result")})
	}
	if res.Evidence == nil {
		res.Evidence = make(map[schema.RequirementKey]string)
	}
	return res
}

func degraded(err error) *schema.AIResult {
	res := schema.DegradedAIResult()
	res.Evidence[schema.KeyError] = err.Error()
	return res
}

func kindOf(err error) Kind {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Kind
	}
	return KindCall
}
