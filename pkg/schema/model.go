package schema

import (
	"strings"
	"time"
)

// ModelKind records how a compliance model was created.
type ModelKind string

const (
	ModelKindFile       ModelKind = "file"       // reference text extracted from an uploaded file
	ModelKindStructured ModelKind = "structured" // requirements supplied as JSON/YAML
	ModelKindBuiltin    ModelKind = "builtin"
)

// DefaultModelID is the identifier callers use to select the default catalog.
const DefaultModelID = "default"

// ComplianceModel is the catalog of requirements a document is checked against.
type ComplianceModel struct {
	ID            string       `json:"id" yaml:"id" validate:"required"`
	Name          string       `json:"name" yaml:"name" validate:"required,max=200"`
	Version       string       `json:"version,omitempty" yaml:"version,omitempty"`
	Kind          ModelKind    `json:"kind" yaml:"kind" validate:"required,oneof=file structured builtin"`
	SourceFile    string       `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	ReferenceText string       `json:"reference_text,omitempty" yaml:"reference_text,omitempty"`
	Requirements  Requirements `json:"requirements" yaml:"requirements"`
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at"`
}

// Requirements holds the free-text description of every obligation.
type Requirements struct {
	GeneralExperience string           `json:"general_experience" yaml:"general_experience"`
	Groups            map[string]Group `json:"groups" yaml:"groups" validate:"dive"`
	MandatoryProof    string           `json:"mandatory_proof" yaml:"mandatory_proof"`
}

// Group is one lot of the template. Items i, ii and iii are cumulative.
type Group struct {
	Name  string            `json:"name" yaml:"name"`
	Items map[string]string `json:"items" yaml:"items"`
}

// Description returns the free-text description for key, or "" when the
// model does not describe it.
func (m *ComplianceModel) Description(key RequirementKey) string {
	if m == nil {
		return ""
	}
	switch key {
	case KeyGeneralExperience:
		return m.Requirements.GeneralExperience
	case KeyMandatoryProof:
		return m.Requirements.MandatoryProof
	}

	rest, ok := strings.CutPrefix(string(key), "group_")
	if !ok {
		return ""
	}
	group, item, ok := strings.Cut(rest, "_item_")
	if !ok {
		return ""
	}
	g, ok := m.Requirements.Groups[group]
	if !ok {
		return ""
	}
	return g.Items[item]
}

// WithoutReferenceText returns a shallow copy with the reference text cleared.
func (m *ComplianceModel) WithoutReferenceText() *ComplianceModel {
	if m == nil {
		return nil
	}
	clone := *m
	clone.ReferenceText = ""
	return &clone
}
