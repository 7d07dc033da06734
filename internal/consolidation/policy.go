// Package consolidation merges rule-based and AI findings into one verdict.
package consolidation

import (
	"fmt"
	"math"

	"docval/pkg/schema"
)

// Config holds the approval thresholds.
type Config struct {
	// MandatoryCoverageRatio is the share of mandatory keys that must be met
	MandatoryCoverageRatio float64
	// AIOverrideMissingCeiling is the most mandatory keys that may be missing
	// when an APROVADO assessment is allowed to approve
	AIOverrideMissingCeiling int
}

// DefaultConfig returns the 70% coverage and two-missing override policy.
func DefaultConfig() Config {
	return Config{
		MandatoryCoverageRatio:   0.70,
		AIOverrideMissingCeiling: 2,
	}
}

// Validate checks the thresholds are in range.
func (c Config) Validate() error {
	if c.MandatoryCoverageRatio < 0 || c.MandatoryCoverageRatio > 1 {
		return fmt.Errorf("mandatory coverage ratio must be within [0, 1], got %v", c.MandatoryCoverageRatio)
	}
	if c.AIOverrideMissingCeiling < 0 {
		return fmt.Errorf("AI override ceiling must not be negative, got %d", c.AIOverrideMissingCeiling)
	}
	return nil
}

// Policy consolidates results. It is stateless.
type Policy struct {
	cfg Config
}

// NewPolicy creates a policy for cfg.
func NewPolicy(cfg Config) (*Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Policy{cfg: cfg}, nil
}

// RequiredMet is the number of mandatory keys that must be met.
func (p *Policy) RequiredMet() int {
	n := float64(len(schema.MandatoryKeys())) * p.cfg.MandatoryCoverageRatio
	return int(math.Ceil(n - 1e-9))
}

// Consolidate merges rule and ai into a verdict. A nil ai means no
// assessment ran. Rule classifications are authoritative: the assessment
// only places keys the rules left unclassified, so every key ends up in at
// most one bucket. AI evidence overwrites rule evidence for the same key.
func (p *Policy) Consolidate(rule *schema.RuleResult, ai *schema.AIResult) *schema.Verdict {
	v := &schema.Verdict{
		Met:           []schema.RequirementKey{},
		Missing:       []schema.RequirementKey{},
		Doubtful:      []schema.RequirementKey{},
		Evidence:      make(map[schema.RequirementKey]string),
		OverallStatus: schema.StatusRejected,
		Scores:        make(map[schema.RequirementKey]schema.Score),
	}

	placed := make(map[schema.RequirementKey]bool)
	place := func(bucket *[]schema.RequirementKey, keys []schema.RequirementKey) {
		for _, k := range keys {
			if placed[k] {
				continue
			}
			placed[k] = true
			*bucket = append(*bucket, k)
		}
	}

	if rule != nil {
		place(&v.Met, rule.Met)
		place(&v.Doubtful, rule.Doubtful)
		place(&v.Missing, rule.Missing)
		for k, e := range rule.Evidence {
			v.Evidence[k] = e
		}
		for k, s := range rule.Scores {
			v.Scores[k] = s
		}
	}

	if ai != nil {
		v.AIUsed = true
		place(&v.Met, ai.Met)
		place(&v.Missing, ai.Missing)
		for k, e := range ai.Evidence {
			v.Evidence[k] = e
		}
		v.Rationale = ai.Rationale
	}

	v.OverallStatus = p.status(v, ai)
	return v
}

func (p *Policy) status(v *schema.Verdict, ai *schema.AIResult) schema.Status {
	missing, met := 0, 0
	for _, k := range schema.MandatoryKeys() {
		c, ok := v.Classification(k)
		if !ok {
			continue
		}
		switch c {
		case schema.ClassificationMissing:
			missing++
		case schema.ClassificationMet:
			met++
		}
	}

	if missing == 0 && met >= p.RequiredMet() {
		return schema.StatusApproved
	}
	if ai != nil && ai.OverallStatus == schema.StatusApproved && missing <= p.cfg.AIOverrideMissingCeiling {
		return schema.StatusApproved
	}
	return schema.StatusRejected
}
