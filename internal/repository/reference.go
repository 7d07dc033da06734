package repository

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docval/pkg/schema"
)

// NewReferenceModel builds a file-kind model from text extracted out of a
// reference document. The requirement catalog comes from the builtin model.
func NewReferenceModel(name, sourceFile, text string) (*schema.ComplianceModel, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("reference document %q has no text", sourceFile)
	}

	id, err := schema.NewModelID()
	if err != nil {
		return nil, fmt.Errorf("generate model id: %w", err)
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	}

	base := schema.DefaultModel()
	return &schema.ComplianceModel{
		ID:            id,
		Name:          name,
		Version:       base.Version,
		Kind:          schema.ModelKindFile,
		SourceFile:    filepath.Base(sourceFile),
		ReferenceText: text,
		Requirements:  base.Requirements,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
