package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"docval/internal/scoring"
	"docval/pkg/schema"
)

// AssessmentSystemPrompt is sent as the system message of every assessment.
const AssessmentSystemPrompt = "Você é um especialista em análise de documentos jurídicos. Sempre retorne apenas JSON válido."

// DefaultMaxExcerptChars bounds the document excerpt placed in the prompt.
const DefaultMaxExcerptChars = 8000

// PromptOptions carries the numeric bounds quoted to the model.
type PromptOptions struct {
	MaxExcerptChars   int
	CurrencyThreshold float64
	RequiredCount     int
	TimeWindowYears   int
}

// DefaultPromptOptions mirrors the scorer defaults.
func DefaultPromptOptions() PromptOptions {
	cfg := scoring.DefaultConfig()
	return PromptOptions{
		MaxExcerptChars:   DefaultMaxExcerptChars,
		CurrencyThreshold: cfg.CurrencyThreshold,
		RequiredCount:     cfg.RequiredCount,
		TimeWindowYears:   cfg.TimeWindowYears,
	}
}

// Excerpt truncates text to at most n runes.
func Excerpt(text string, n int) string {
	if n <= 0 {
		return text
	}
	return truncate(text, n)
}

// BuildAssessmentPrompt creates the user prompt asking a model to classify
// every mandatory requirement of model against text.
func BuildAssessmentPrompt(model *schema.ComplianceModel, text string, opts PromptOptions) (string, error) {
	if opts.MaxExcerptChars == 0 {
		opts.MaxExcerptChars = DefaultMaxExcerptChars
	}

	modelJSON, err := json.MarshalIndent(model.WithoutReferenceText(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal model: %w", err)
	}

	amount := scoring.FormatAmount(opts.CurrencyThreshold)
	var sb strings.Builder

	sb.WriteString("Compare o documento enviado com o modelo oficial abaixo e analise TODOS os requisitos obrigatórios.\n\n")

	sb.WriteString("MODELO OFICIAL:\n")
	sb.Write(modelJSON)
	sb.WriteString("\n\n")

	if model != nil && model.ReferenceText != "" {
		sb.WriteString("MODELO DE REFERÊNCIA (texto extraído):\n")
		sb.WriteString(Excerpt(model.ReferenceText, opts.MaxExcerptChars))
		sb.WriteString("\n\n")
	}

	sb.WriteString("DOCUMENTO ENVIADO:\n")
	sb.WriteString(Excerpt(text, opts.MaxExcerptChars))
	sb.WriteString("\n\n")

	sb.WriteString("REQUISITOS (use exatamente estas chaves):\n")
	for _, key := range schema.MandatoryKeys() {
		desc := model.Description(key)
		if desc == "" {
			desc = "(sem descrição no modelo)"
		}
		sb.WriteString(fmt.Sprintf("- %s: %s\n", key, desc))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`INSTRUÇÕES:
1. Os itens i, ii e iii de cada lote são cumulativos: todos devem ser atendidos para o lote contar. O item iv é avaliado isoladamente.
2. Para cada requisito, verifique:
   - Quantidade mínima: %d (defesas, processos)
   - Valor mínimo: >= R$ %s
   - Período: últimos %d anos
   - Comprovações específicas (sentenças favoráveis, certidões de trânsito em julgado, capacidade contábil)
3. Cada chave deve aparecer em no máximo uma lista.

Retorne APENAS um JSON válido com esta estrutura exata:
{
  "met": ["chaves completamente atendidas"],
  "missing": ["chaves não comprovadas"],
  "doubtful": ["chaves parcialmente comprovadas"],
  "evidence": {
    "chave": "trecho do documento que justifica"
  },
  "overall_status": "APROVADO" ou "REPROVADO",
  "rationale": "explicação breve do status geral"
}

IMPORTANTE: Retorne APENAS o JSON, sem texto adicional antes ou depois.`, opts.RequiredCount, amount, opts.TimeWindowYears))

	return sb.String(), nil
}
