package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docval/internal/consolidation"
	"docval/internal/repository"
	"docval/internal/rules"
	"docval/internal/scoring"
	"docval/pkg/schema"
)

const (
	partialDocument  = "Experiência em direito tributário e previdenciário."
	completeDocument = "Experiência em direito tributário e previdenciário. " +
		"Histórico profissional com pelo menos 5 defesas administrativas perante a Receita Federal " +
		"e 5 processos judiciais, com valores de R$ 3.000.000,00, nos últimos 5 anos, " +
		"com resultado exitoso e sentença favorável. Securitização de créditos e emissão de debêntures. " +
		"Formação contábil com análise de documentos contábeis. Certidão de trânsito em julgado."
)

// newTestValidator builds a validator over a temporary model store.
func newTestValidator(t *testing.T, assessor Assessor) (*Validator, *repository.Store) {
	t.Helper()

	scorer, err := scoring.NewScorer(scoring.DefaultConfig())
	require.NoError(t, err)
	policy, err := consolidation.NewPolicy(consolidation.DefaultConfig())
	require.NoError(t, err)

	store := repository.NewStore(t.TempDir(), "test")
	return NewValidator(store, rules.NewValidator(scorer), assessor, policy, NewLogger("error")), store
}

func TestValidator_RuleOnlyPartialDocument(t *testing.T) {
	mock := NewMockAssessor(nil)
	v, _ := newTestValidator(t, mock)

	verdict, err := v.Validate(context.Background(), Request{Text: partialDocument})
	require.NoError(t, err)

	assert.Equal(t, schema.StatusRejected, verdict.OverallStatus)
	assert.Equal(t, []schema.RequirementKey{schema.KeyGeneralExperience}, verdict.Met)
	assert.Equal(t, []schema.RequirementKey{schema.KeyGroup1ItemIII}, verdict.Doubtful)
	assert.Len(t, verdict.Missing, 8)
	assert.False(t, verdict.AIUsed)
	assert.Equal(t, 0, mock.Calls(), "assessor must not run when UseAI is false")

	assert.Equal(t, schema.DefaultModelID, verdict.ModelID)
	assert.Equal(t, schema.DefaultModel().Name, verdict.ModelName)
}

func TestValidator_CompleteDocumentApproved(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	verdict, err := v.Validate(context.Background(), Request{Text: completeDocument, UseAI: true})
	require.NoError(t, err)

	assert.Equal(t, schema.StatusApproved, verdict.OverallStatus)
	assert.Len(t, verdict.Met, 10)
	assert.Empty(t, verdict.Missing)
	assert.False(t, verdict.AIUsed, "no assessor configured")
}

func TestValidator_AssessorCannotApproveManyMissing(t *testing.T) {
	mock := NewMockAssessor(&schema.AIResult{
		Met:           []schema.RequirementKey{schema.KeyGroup1ItemI},
		Missing:       []schema.RequirementKey{},
		Doubtful:      []schema.RequirementKey{},
		Evidence:      map[schema.RequirementKey]string{schema.KeyGroup1ItemI: "Atestado citado"},
		OverallStatus: schema.StatusApproved,
		Rationale:     "Documento parece completo",
	})
	v, _ := newTestValidator(t, mock)

	verdict, err := v.Validate(context.Background(), Request{Text: partialDocument, UseAI: true})
	require.NoError(t, err)

	assert.Equal(t, 1, mock.Calls())
	assert.Equal(t, partialDocument, mock.LastText)
	assert.True(t, verdict.AIUsed)
	assert.Equal(t, "Documento parece completo", verdict.Rationale)
	assert.Equal(t, "Atestado citado", verdict.Evidence[schema.KeyGroup1ItemI])

	// The rules already classified group_1_item_i as missing.
	c, ok := verdict.Classification(schema.KeyGroup1ItemI)
	require.True(t, ok)
	assert.Equal(t, schema.ClassificationMissing, c)
	assert.Equal(t, schema.StatusRejected, verdict.OverallStatus)
}

func TestValidator_DisabledAssessorSkipped(t *testing.T) {
	mock := NewMockAssessor(nil)
	mock.Disabled = true
	v, _ := newTestValidator(t, mock)

	verdict, err := v.Validate(context.Background(), Request{Text: partialDocument, UseAI: true})
	require.NoError(t, err)
	assert.False(t, verdict.AIUsed)
	assert.Equal(t, 0, mock.Calls())
}

func TestValidator_BlankText(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	for _, text := range []string{"", "   \n\t"} {
		_, err := v.Validate(context.Background(), Request{Text: text})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "got %v", err)
		assert.Equal(t, "text", vErr.Field)
	}
}

func TestValidator_UnknownModel(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	_, err := v.Validate(context.Background(), Request{Text: partialDocument, ModelID: "MOD-missing"})
	var nfErr *NotFoundError
	require.True(t, errors.As(err, &nfErr), "got %v", err)
	assert.Equal(t, "MOD-missing", nfErr.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestValidator_StoredModel(t *testing.T) {
	v, store := newTestValidator(t, nil)

	m := schema.DefaultModel()
	m.ID = "edital-2025"
	m.Name = "Edital 2025"
	m.Kind = schema.ModelKindStructured
	require.NoError(t, store.Save(m))

	verdict, err := v.Validate(context.Background(), Request{Text: partialDocument, ModelID: "edital-2025"})
	require.NoError(t, err)
	assert.Equal(t, "edital-2025", verdict.ModelID)
	assert.Equal(t, "Edital 2025", verdict.ModelName)
}

func TestValidator_ResolveDefault(t *testing.T) {
	t.Run("built-in when nothing stored", func(t *testing.T) {
		v, _ := newTestValidator(t, nil)
		m, err := v.ResolveModel("")
		require.NoError(t, err)
		assert.Equal(t, schema.ModelKindBuiltin, m.Kind)
	})

	t.Run("stored default wins", func(t *testing.T) {
		v, store := newTestValidator(t, nil)
		m := schema.DefaultModel()
		m.Name = "Default customizado"
		m.Kind = schema.ModelKindStructured
		require.NoError(t, store.Save(m))

		got, err := v.ResolveModel(schema.DefaultModelID)
		require.NoError(t, err)
		assert.Equal(t, "Default customizado", got.Name)
	})

	t.Run("corrupt stored default falls back", func(t *testing.T) {
		v, store := newTestValidator(t, nil)
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "default.yaml"), []byte("id: [oops"), 0o644))

		got, err := v.ResolveModel("default")
		require.NoError(t, err)
		assert.Equal(t, schema.ModelKindBuiltin, got.Kind)
	})

	t.Run("no store", func(t *testing.T) {
		v, _ := newTestValidator(t, nil)
		v.models = nil

		_, err := v.ResolveModel("")
		assert.NoError(t, err)
		_, err = v.ResolveModel("other")
		var nfErr *NotFoundError
		assert.True(t, errors.As(err, &nfErr))
	})
}

func TestValidator_CanceledContext(t *testing.T) {
	v, _ := newTestValidator(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Validate(ctx, Request{Text: partialDocument})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidatorFromConfig_RuleOnly(t *testing.T) {
	cfg := &Config{
		LogLevel:   "error",
		AIProvider: "none",
		APIKeys:    map[string]string{},
		ModelsDir:  t.TempDir(),
		Scoring:    scoring.DefaultConfig(),
		Policy:     consolidation.DefaultConfig(),
	}

	v, store, err := NewValidatorFromConfig(context.Background(), cfg, "test", NewLogger("error"))
	require.NoError(t, err)
	assert.Equal(t, cfg.ModelsDir, store.Dir())

	verdict, err := v.Validate(context.Background(), Request{Text: completeDocument, UseAI: true})
	require.NoError(t, err)
	assert.Equal(t, schema.StatusApproved, verdict.OverallStatus)
	assert.False(t, verdict.AIUsed)
}

func TestNewValidatorFromConfig_UnknownProvider(t *testing.T) {
	cfg := &Config{
		AIProvider: "mystery",
		APIKeys:    map[string]string{},
		ModelsDir:  t.TempDir(),
		Scoring:    scoring.DefaultConfig(),
		Policy:     consolidation.DefaultConfig(),
	}

	_, _, err := NewValidatorFromConfig(context.Background(), cfg, "test", NewLogger("error"))
	var llmErr *LLMError
	require.True(t, errors.As(err, &llmErr), "got %v", err)
	assert.Equal(t, "assessment", llmErr.Task)
}
