package scoring

import (
	"fmt"

	"docval/pkg/schema"
)

const defaultPartialNote = "Menção parcial: encontrou %d de %d critérios necessários"

// Rule scores one requirement by summing the weights of matched criteria.
type Rule struct {
	Key      schema.RequirementKey
	Criteria []Criterion

	// MetAt is the minimum points for ATENDIDO. DoubtfulAt is the minimum for
	// DUVIDOSO; zero disables the doubtful band.
	MetAt      int
	DoubtfulAt int

	MetNote     string
	MissingNote string
	// PartialNote replaces the counted "N de M" note when set.
	PartialNote string
}

// MaxPoints is the sum of all criterion weights.
func (r Rule) MaxPoints() int {
	total := 0
	for _, c := range r.Criteria {
		total += c.weight()
	}
	return total
}

// Matched returns the names of the criteria satisfied by text.
func (r Rule) Matched(text string) []string {
	var names []string
	for _, c := range r.Criteria {
		if c.Match(text) {
			names = append(names, c.Name)
		}
	}
	return names
}

// Score evaluates the rule against lower-cased text.
func (r Rule) Score(text string) schema.Score {
	points := 0
	for _, c := range r.Criteria {
		if c.Match(text) {
			points += c.weight()
		}
	}
	maxPoints := r.MaxPoints()

	s := schema.Score{Key: r.Key, Points: points, MaxPoints: maxPoints}
	switch {
	case points >= r.MetAt:
		s.Classification = schema.ClassificationMet
		s.Evidence = r.MetNote
	case r.DoubtfulAt > 0 && points >= r.DoubtfulAt:
		s.Classification = schema.ClassificationDoubtful
		if r.PartialNote != "" {
			s.Evidence = r.PartialNote
		} else {
			s.Evidence = fmt.Sprintf(defaultPartialNote, points, maxPoints)
		}
	default:
		s.Classification = schema.ClassificationMissing
		s.Evidence = r.MissingNote
	}
	return s
}
