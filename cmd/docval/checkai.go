package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docval/internal/assessment"
	"docval/internal/core"
	"docval/pkg/schema"
)

// sampleDocument satisfies every rule of the built-in catalog.
const sampleDocument = "Experiência em direito tributário e previdenciário. " +
	"Histórico profissional com pelo menos 5 defesas administrativas perante a Receita Federal " +
	"e 5 processos judiciais, com valores de R$ 3.000.000,00, nos últimos 5 anos, " +
	"com resultado exitoso e sentença favorável. Securitização de créditos e emissão de debêntures. " +
	"Formação contábil com análise de documentos contábeis. Certidão de trânsito em julgado."

func newCheckAICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-ai",
		Short: "Send a sample document to the configured assessment backend",
		Long: "Runs one structured assessment of a built-in sample document so provider,\n" +
			"credentials and model can be checked before validating real documents.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			backend, err := assessment.NewBackend(cmd.Context(), a.cfg.AssessmentConfig())
			if err != nil {
				return &core.LLMError{Task: "assessment", Message: "configure backend", Err: err}
			}
			if backend == nil {
				fmt.Fprintf(out, "❌ No assessment backend (AI_PROVIDER=%q)\n", a.cfg.AIProvider)
				fmt.Fprintln(out, "   Set AI_PROVIDER and the matching API key, e.g. OPENAI_API_KEY")
				return &core.LLMError{Task: "assessment", Message: "backend not configured"}
			}

			fmt.Fprintf(out, "🤖 Backend: %s\n", backend.Name())
			start := time.Now()

			result, err := backend.Assess(cmd.Context(), sampleDocument, schema.DefaultModel())
			if err != nil {
				fmt.Fprintf(out, "   ❌ Failed after %s: %v\n", time.Since(start).Round(time.Millisecond), err)
				return &core.LLMError{Task: "assessment", Message: "sample assessment failed", Err: err}
			}

			fmt.Fprintf(out, "   ✅ Answered in %s\n", time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(out, "   Status:   %s\n", result.OverallStatus)
			fmt.Fprintf(out, "   Met:      %s\n", joinKeys(result.Met))
			fmt.Fprintf(out, "   Missing:  %s\n", joinKeys(result.Missing))
			fmt.Fprintf(out, "   Doubtful: %s\n", joinKeys(result.Doubtful))
			if result.Rationale != "" {
				fmt.Fprintf(out, "   ℹ️  %s\n", result.Rationale)
			}
			return nil
		},
	}
}

func joinKeys(keys []schema.RequirementKey) string {
	if len(keys) == 0 {
		return "-"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
