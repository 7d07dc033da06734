// Package rules runs the evidence scorer over every mandatory requirement.
package rules

import (
	"strings"

	"docval/internal/scoring"
	"docval/pkg/schema"
)

// Validator classifies a document against the fixed requirement catalog.
// It is deterministic and safe for concurrent use.
type Validator struct {
	scorer *scoring.Scorer
}

// NewValidator creates a rule validator backed by scorer.
func NewValidator(scorer *scoring.Scorer) *Validator {
	return &Validator{scorer: scorer}
}

// Validate scores text against every mandatory key in order. The model's
// description is attached to each score but classification is driven by the
// text alone, so a key the model does not describe is still scored.
func (v *Validator) Validate(model *schema.ComplianceModel, text string) *schema.RuleResult {
	lowered := strings.ToLower(text)
	result := schema.NewRuleResult()

	for _, key := range schema.MandatoryKeys() {
		score := v.scorer.Score(key, lowered)
		score.Requirement = model.Description(key)
		result.Add(score)
	}
	return result
}
