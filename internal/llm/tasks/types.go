package tasks

import (
	"strings"

	"docval/internal/llm"
	"docval/pkg/schema"
)

// AssessmentInput is the input for the assessment task.
type AssessmentInput struct {
	Model   *schema.ComplianceModel `json:"model"`
	Text    string                  `json:"text"`
	Options llm.PromptOptions       `json:"options"`

	// LLMModel overrides the provider's default model
	LLMModel string `json:"llm_model,omitempty"`

	// Attempts bounds retries on malformed replies
	Attempts int `json:"attempts,omitempty"`
}

// AssessmentOutput is the JSON object the model must return.
type AssessmentOutput struct {
	Met           []string          `json:"met"`
	Missing       []string          `json:"missing"`
	Doubtful      []string          `json:"doubtful"`
	Evidence      map[string]string `json:"evidence"`
	OverallStatus string            `json:"overall_status"`
	Rationale     string            `json:"rationale"`
}

// keyAliases maps the Portuguese identifiers some models echo back from the
// template onto the stable requirement keys.
var keyAliases = map[string]schema.RequirementKey{
	"experiencia_geral": schema.KeyGeneralExperience,
	"lote_1_i":          schema.KeyGroup1ItemI,
	"lote_1_ii":         schema.KeyGroup1ItemII,
	"lote_1_iii":        schema.KeyGroup1ItemIII,
	"lote_1_iv":         schema.KeyGroup1ItemIV,
	"lote_2_i":          schema.KeyGroup2ItemI,
	"lote_2_ii":         schema.KeyGroup2ItemII,
	"lote_2_iii":        schema.KeyGroup2ItemIII,
	"lote_2_iv":         schema.KeyGroup2ItemIV,
	"comprovacoes":      schema.KeyMandatoryProof,
}

// NormalizeKey trims and lower-cases a key and resolves known aliases.
func NormalizeKey(raw string) schema.RequirementKey {
	k := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return schema.RequirementKey(k)
}

// ToAIResult converts the reply into the shared result shape. Keys are
// normalized and deduplicated; a key listed in several buckets keeps the
// first of met, doubtful, missing.
func (o *AssessmentOutput) ToAIResult() *schema.AIResult {
	res := schema.DegradedAIResult()
	res.OverallStatus = schema.Status(strings.ToUpper(strings.TrimSpace(o.OverallStatus)))
	res.Rationale = o.Rationale

	seen := make(map[schema.RequirementKey]bool)
	collect := func(raw []string) []schema.RequirementKey {
		out := []schema.RequirementKey{}
		for _, r := range raw {
			k := NormalizeKey(r)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
		return out
	}
	res.Met = collect(o.Met)
	res.Doubtful = collect(o.Doubtful)
	res.Missing = collect(o.Missing)

	for k, v := range o.Evidence {
		if key := NormalizeKey(k); key != "" {
			res.Evidence[key] = v
		}
	}
	return res
}
