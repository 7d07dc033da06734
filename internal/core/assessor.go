package core

import (
	"context"
	"sync"

	"docval/pkg/schema"
)

// Assessor abstracts structured assessment for testability.
// *assessment.Adapter is the production implementation.
type Assessor interface {
	Enabled() bool
	Assess(ctx context.Context, text string, model *schema.ComplianceModel) *schema.AIResult
}

// MockAssessor returns a canned result and records calls.
type MockAssessor struct {
	mu sync.Mutex

	Disabled bool
	Result   *schema.AIResult

	AssessCalls int
	LastText    string
	LastModel   *schema.ComplianceModel
}

// NewMockAssessor creates an enabled mock that returns result.
func NewMockAssessor(result *schema.AIResult) *MockAssessor {
	return &MockAssessor{Result: result}
}

func (m *MockAssessor) Enabled() bool {
	return !m.Disabled
}

func (m *MockAssessor) Assess(ctx context.Context, text string, model *schema.ComplianceModel) *schema.AIResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AssessCalls++
	m.LastText = text
	m.LastModel = model

	if m.Result == nil {
		return schema.DegradedAIResult()
	}
	return m.Result
}

// Calls returns the number of Assess calls so far.
func (m *MockAssessor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AssessCalls
}
