package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docval/internal/assessment"
	"docval/internal/consolidation"
	"docval/internal/repository"
	"docval/internal/rules"
	"docval/internal/scoring"
	"docval/pkg/schema"
)

// ModelSource loads stored compliance models. *repository.Store implements it.
type ModelSource interface {
	Load(id string) (*schema.ComplianceModel, error)
}

// Request is one validation call.
type Request struct {
	Text    string // extracted document text
	ModelID string // empty or "default" selects the default catalog
	UseAI   bool
}

// Validator runs rules, optional structured assessment and consolidation.
type Validator struct {
	models   ModelSource
	rules    *rules.Validator
	assessor Assessor
	policy   *consolidation.Policy
	logger   Logger
}

// NewValidator creates a validator. models and assessor may be nil.
func NewValidator(models ModelSource, rv *rules.Validator, assessor Assessor, policy *consolidation.Policy, logger Logger) *Validator {
	return &Validator{
		models:   models,
		rules:    rv,
		assessor: assessor,
		policy:   policy,
		logger:   logger,
	}
}

// NewValidatorFromConfig wires the production stack: a file store in
// cfg.ModelsDir, the keyword scorer and the configured assessment backend.
func NewValidatorFromConfig(ctx context.Context, cfg *Config, owner string, logger Logger) (*Validator, *repository.Store, error) {
	scorer, err := scoring.NewScorer(cfg.Scoring)
	if err != nil {
		return nil, nil, &ValidationError{Field: "scoring", Message: err.Error(), Err: err}
	}
	policy, err := consolidation.NewPolicy(cfg.Policy)
	if err != nil {
		return nil, nil, &ValidationError{Field: "policy", Message: err.Error(), Err: err}
	}

	backend, err := assessment.NewBackend(ctx, cfg.AssessmentConfig())
	if err != nil {
		return nil, nil, &LLMError{Task: "assessment", Message: "configure backend", Err: err}
	}

	store := repository.NewStore(cfg.ModelsDir, owner)
	v := NewValidator(store, rules.NewValidator(scorer), assessment.NewAdapter(backend), policy, logger)
	return v, store, nil
}

// ResolveModel returns the model for id. The default id falls back from the
// stored "default" model to the built-in catalog.
func (v *Validator) ResolveModel(id string) (*schema.ComplianceModel, error) {
	return ResolveModel(v.models, id, v.logger)
}

// ResolveModel looks id up in models, which may be nil.
func ResolveModel(models ModelSource, id string, logger Logger) (*schema.ComplianceModel, error) {
	id = strings.TrimSpace(id)
	isDefault := id == "" || id == schema.DefaultModelID

	if models == nil {
		if isDefault {
			return schema.DefaultModel(), nil
		}
		return nil, &NotFoundError{Resource: "model", ID: id}
	}

	if isDefault {
		m, err := models.Load(schema.DefaultModelID)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Stored default model unreadable, using built-in catalog", "error", err)
		}
		return schema.DefaultModel(), nil
	}

	m, err := models.Load(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "model", ID: id, Err: err}
		}
		return nil, fmt.Errorf("load model: %w", err)
	}
	return m, nil
}

// Validate checks req.Text against the selected model. Only a blank text or
// an unknown model is an error; assessment failures degrade the verdict.
func (v *Validator) Validate(ctx context.Context, req Request) (*schema.Verdict, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &ValidationError{Field: "text", Message: "document text is empty"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := v.ResolveModel(req.ModelID)
	if err != nil {
		return nil, err
	}

	ruleResult := v.rules.Validate(model, req.Text)

	var ai *schema.AIResult
	if req.UseAI && v.assessor != nil && v.assessor.Enabled() {
		ai = v.assessor.Assess(ctx, req.Text, model)
	}

	verdict := v.policy.Consolidate(ruleResult, ai)
	verdict.ModelID = model.ID
	verdict.ModelName = model.Name

	v.logger.Info("Document validated",
		"model", model.ID,
		"status", verdict.OverallStatus,
		"met", len(verdict.Met),
		"missing", len(verdict.Missing),
		"doubtful", len(verdict.Doubtful),
		"ai_used", verdict.AIUsed,
	)
	return verdict, nil
}
