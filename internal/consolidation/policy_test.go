package consolidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docval/pkg/schema"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(DefaultConfig())
	require.NoError(t, err)
	return p
}

// ruleResult classifies the first met keys as met, the next doubtful keys as
// doubtful and the rest as missing, in mandatory order.
func ruleResult(met, doubtful int) *schema.RuleResult {
	r := schema.NewRuleResult()
	for i, k := range schema.MandatoryKeys() {
		c := schema.ClassificationMissing
		switch {
		case i < met:
			c = schema.ClassificationMet
		case i < met+doubtful:
			c = schema.ClassificationDoubtful
		}
		r.Add(schema.Score{Key: k, Classification: c, Evidence: "regra " + string(k)})
	}
	return r
}

func assertDisjoint(t *testing.T, v *schema.Verdict) {
	t.Helper()
	seen := map[schema.RequirementKey]bool{}
	for _, bucket := range [][]schema.RequirementKey{v.Met, v.Missing, v.Doubtful} {
		for _, k := range bucket {
			assert.False(t, seen[k], "key %s appears in more than one bucket", k)
			seen[k] = true
		}
	}
}

func TestNewPolicyValidatesConfig(t *testing.T) {
	_, err := NewPolicy(Config{MandatoryCoverageRatio: 1.5})
	assert.Error(t, err)

	_, err = NewPolicy(Config{MandatoryCoverageRatio: 0.5, AIOverrideMissingCeiling: -1})
	assert.Error(t, err)
}

func TestRequiredMet(t *testing.T) {
	assert.Equal(t, 7, newTestPolicy(t).RequiredMet())

	p, err := NewPolicy(Config{MandatoryCoverageRatio: 0.75})
	require.NoError(t, err)
	assert.Equal(t, 8, p.RequiredMet())
}

func TestConsolidateRuleOnly(t *testing.T) {
	tests := []struct {
		name     string
		met      int
		doubtful int
		want     schema.Status
	}{
		{"all met", 10, 0, schema.StatusApproved},
		{"seven met three doubtful", 7, 3, schema.StatusApproved},
		{"six met four doubtful", 6, 4, schema.StatusRejected},
		{"nine met one missing", 9, 0, schema.StatusRejected},
		{"nothing met", 0, 0, schema.StatusRejected},
	}

	p := newTestPolicy(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.Consolidate(ruleResult(tt.met, tt.doubtful), nil)
			assert.Equal(t, tt.want, v.OverallStatus)
			assert.False(t, v.AIUsed)
			assert.Len(t, v.Met, tt.met)
			assert.Len(t, v.Doubtful, tt.doubtful)
			assertDisjoint(t, v)
		})
	}
}

func TestConsolidateAIOverride(t *testing.T) {
	p := newTestPolicy(t)

	tests := []struct {
		name     string
		met      int
		aiStatus schema.Status
		want     schema.Status
	}{
		{"approved with two missing", 8, schema.StatusApproved, schema.StatusApproved},
		{"approved with three missing", 7, schema.StatusApproved, schema.StatusRejected},
		{"rejected with two missing", 8, schema.StatusRejected, schema.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := schema.DegradedAIResult()
			ai.OverallStatus = tt.aiStatus
			v := p.Consolidate(ruleResult(tt.met, 0), ai)
			assert.Equal(t, tt.want, v.OverallStatus)
			assert.True(t, v.AIUsed)
		})
	}
}

func TestConsolidateAIRejectionDoesNotSuppressRuleApproval(t *testing.T) {
	p := newTestPolicy(t)
	ai := schema.DegradedAIResult()
	ai.Missing = []schema.RequirementKey{schema.KeyMandatoryProof}

	v := p.Consolidate(ruleResult(10, 0), ai)

	// The rule already classified mandatory_proof as met.
	assert.Equal(t, schema.StatusApproved, v.OverallStatus)
	assert.Contains(t, v.Met, schema.KeyMandatoryProof)
	assert.NotContains(t, v.Missing, schema.KeyMandatoryProof)
}

func TestConsolidateRuleClassificationTakesPrecedence(t *testing.T) {
	p := newTestPolicy(t)

	rule := ruleResult(1, 1)
	ai := &schema.AIResult{
		Met:           []schema.RequirementKey{schema.KeyGroup1ItemI, schema.KeyGroup1ItemII},
		Missing:       []schema.RequirementKey{schema.KeyGeneralExperience},
		Evidence:      map[schema.RequirementKey]string{schema.KeyGroup1ItemI: "IA: cinco defesas"},
		OverallStatus: schema.StatusRejected,
		Rationale:     "faltam provas",
	}

	v := p.Consolidate(rule, ai)

	assert.Contains(t, v.Met, schema.KeyGeneralExperience)
	assert.NotContains(t, v.Missing, schema.KeyGeneralExperience)
	assert.Contains(t, v.Doubtful, schema.KeyGroup1ItemI)
	assert.NotContains(t, v.Met, schema.KeyGroup1ItemI)
	assert.Contains(t, v.Missing, schema.KeyGroup1ItemII)

	assert.Equal(t, "IA: cinco defesas", v.Evidence[schema.KeyGroup1ItemI])
	assert.Equal(t, "regra group_1_item_ii", v.Evidence[schema.KeyGroup1ItemII])
	assert.Equal(t, "faltam provas", v.Rationale)
	assertDisjoint(t, v)
}

func TestConsolidateAIAddsUnclassifiedKeys(t *testing.T) {
	p := newTestPolicy(t)

	rule := schema.NewRuleResult()
	rule.Add(schema.Score{Key: schema.KeyGeneralExperience, Classification: schema.ClassificationMet})

	ai := &schema.AIResult{
		Met:           []schema.RequirementKey{schema.KeyGroup1ItemIV, schema.KeyGroup1ItemIV},
		Missing:       []schema.RequirementKey{schema.KeyMandatoryProof, schema.KeyGroup1ItemIV},
		OverallStatus: schema.StatusRejected,
	}

	v := p.Consolidate(rule, ai)
	assert.Equal(t, []schema.RequirementKey{schema.KeyGeneralExperience, schema.KeyGroup1ItemIV}, v.Met)
	assert.Equal(t, []schema.RequirementKey{schema.KeyMandatoryProof}, v.Missing)
	assertDisjoint(t, v)
}

func TestConsolidateDegradedAssessment(t *testing.T) {
	p := newTestPolicy(t)

	ai := schema.DegradedAIResult()
	ai.Evidence[schema.KeyError] = "assessment call error (openai): quota"

	v := p.Consolidate(ruleResult(10, 0), ai)
	assert.Equal(t, schema.StatusApproved, v.OverallStatus)
	assert.Equal(t, "assessment call error (openai): quota", v.Evidence[schema.KeyError])
	assert.Len(t, v.Met, 10)
}

func TestConsolidateNilRule(t *testing.T) {
	p := newTestPolicy(t)
	v := p.Consolidate(nil, nil)

	assert.Equal(t, schema.StatusRejected, v.OverallStatus)
	assert.Empty(t, v.Met)
	assert.NotNil(t, v.Evidence)
}
