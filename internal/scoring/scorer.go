package scoring

import (
	"fmt"

	"docval/pkg/schema"
)

// Config holds the numeric bounds every requirement family is checked against.
type Config struct {
	CurrencyThreshold float64
	RequiredCount     int
	TimeWindowYears   int
}

// DefaultConfig returns the bounds of the procurement template.
func DefaultConfig() Config {
	return Config{
		CurrencyThreshold: 2_500_000,
		RequiredCount:     5,
		TimeWindowYears:   5,
	}
}

// Validate checks that the bounds are usable.
func (c Config) Validate() error {
	if c.CurrencyThreshold <= 0 {
		return fmt.Errorf("currency threshold must be positive, got %v", c.CurrencyThreshold)
	}
	if c.RequiredCount <= 0 {
		return fmt.Errorf("required count must be positive, got %d", c.RequiredCount)
	}
	if c.TimeWindowYears <= 0 {
		return fmt.Errorf("time window must be positive, got %d", c.TimeWindowYears)
	}
	return nil
}

// Scorer evaluates requirements against document text. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	cfg   Config
	rules map[schema.RequirementKey]Rule
}

// NewScorer builds a scorer for cfg.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg, rules: buildRules(cfg)}, nil
}

// Config returns the bounds the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Rule returns the rule for key.
func (s *Scorer) Rule(key schema.RequirementKey) (Rule, bool) {
	r, ok := s.rules[key]
	return r, ok
}

// Score evaluates key against already lower-cased text. Unknown keys score
// as missing.
func (s *Scorer) Score(key schema.RequirementKey, text string) schema.Score {
	r, ok := s.rules[key]
	if !ok {
		return schema.Score{
			Key:            key,
			Classification: schema.ClassificationMissing,
			Evidence:       fmt.Sprintf("Requisito desconhecido: %s", key),
		}
	}
	return r.Score(text)
}
