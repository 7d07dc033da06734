package schema

// Score is the scorer's finding for a single requirement.
type Score struct {
	Key            RequirementKey `json:"key" yaml:"key"`
	Classification Classification `json:"classification" yaml:"classification"`
	Points         int            `json:"points" yaml:"points"`
	MaxPoints      int            `json:"max_points" yaml:"max_points"`
	Evidence       string         `json:"evidence" yaml:"evidence"`
	Requirement    string         `json:"requirement,omitempty" yaml:"requirement,omitempty"` // the model's description of the key
}

// RuleResult is the output of the rule-based validator.
type RuleResult struct {
	Met      []RequirementKey          `json:"met" yaml:"met"`
	Missing  []RequirementKey          `json:"missing" yaml:"missing"`
	Doubtful []RequirementKey          `json:"doubtful" yaml:"doubtful"`
	Evidence map[RequirementKey]string `json:"evidence" yaml:"evidence"`
	Scores   map[RequirementKey]Score  `json:"scores" yaml:"scores"`
}

// NewRuleResult returns an empty, ready to fill RuleResult.
func NewRuleResult() *RuleResult {
	return &RuleResult{
		Met:      []RequirementKey{},
		Missing:  []RequirementKey{},
		Doubtful: []RequirementKey{},
		Evidence: make(map[RequirementKey]string),
		Scores:   make(map[RequirementKey]Score),
	}
}

// Add files a score under its classification bucket.
func (r *RuleResult) Add(s Score) {
	switch s.Classification {
	case ClassificationMet:
		r.Met = append(r.Met, s.Key)
	case ClassificationDoubtful:
		r.Doubtful = append(r.Doubtful, s.Key)
	default:
		r.Missing = append(r.Missing, s.Key)
	}
	r.Evidence[s.Key] = s.Evidence
	r.Scores[s.Key] = s
}

// AIResult is the structured assessment returned by an external model.
type AIResult struct {
	Met           []RequirementKey          `json:"met" yaml:"met"`
	Missing       []RequirementKey          `json:"missing" yaml:"missing"`
	Doubtful      []RequirementKey          `json:"doubtful" yaml:"doubtful"`
	Evidence      map[RequirementKey]string `json:"evidence" yaml:"evidence"`
	OverallStatus Status                    `json:"overall_status" yaml:"overall_status"`
	Rationale     string                    `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// DegradedAIResult is the empty assessment used when no model could answer.
func DegradedAIResult() *AIResult {
	return &AIResult{
		Met:           []RequirementKey{},
		Missing:       []RequirementKey{},
		Doubtful:      []RequirementKey{},
		Evidence:      make(map[RequirementKey]string),
		OverallStatus: StatusRejected,
	}
}

// Verdict is the consolidated answer returned to callers.
type Verdict struct {
	Met           []RequirementKey          `json:"met" yaml:"met"`
	Missing       []RequirementKey          `json:"missing" yaml:"missing"`
	Doubtful      []RequirementKey          `json:"doubtful" yaml:"doubtful"`
	Evidence      map[RequirementKey]string `json:"evidence" yaml:"evidence"`
	OverallStatus Status                    `json:"overall_status" yaml:"overall_status"`
	Rationale     string                    `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Scores        map[RequirementKey]Score  `json:"scores,omitempty" yaml:"scores,omitempty"`
	ModelID       string                    `json:"model_id,omitempty" yaml:"model_id,omitempty"`
	ModelName     string                    `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	AIUsed        bool                      `json:"ai_used" yaml:"ai_used"`
}

// Classification reports which bucket key landed in, if any.
func (v *Verdict) Classification(key RequirementKey) (Classification, bool) {
	for _, k := range v.Met {
		if k == key {
			return ClassificationMet, true
		}
	}
	for _, k := range v.Doubtful {
		if k == key {
			return ClassificationDoubtful, true
		}
	}
	for _, k := range v.Missing {
		if k == key {
			return ClassificationMissing, true
		}
	}
	return "", false
}
