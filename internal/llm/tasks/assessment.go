package tasks

import (
	"context"
	"fmt"
	"strings"

	"docval/internal/llm"
	"docval/pkg/schema"
)

// ValidateAssessmentOutput checks the reply before it is trusted.
func ValidateAssessmentOutput(output *AssessmentOutput) error {
	status := schema.Status(strings.ToUpper(strings.TrimSpace(output.OverallStatus)))
	if err := schema.ValidateStatus(status); err != nil {
		return fmt.Errorf("overall_status must be APROVADO or REPROVADO, got %q", output.OverallStatus)
	}

	for name, keys := range map[string][]string{
		"met":      output.Met,
		"missing":  output.Missing,
		"doubtful": output.Doubtful,
	} {
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("%s contains an empty key", name)
			}
		}
	}
	return nil
}

// ExecuteAssessmentTask asks completer to classify every requirement of the
// input model against the input text.
func ExecuteAssessmentTask(
	completer llm.Completer,
	ctx context.Context,
	input *AssessmentInput,
) (*AssessmentOutput, error) {
	prompt, err := llm.BuildAssessmentPrompt(input.Model, input.Text, input.Options)
	if err != nil {
		return nil, fmt.Errorf("assessment task failed: %w", err)
	}

	result, err := llm.GenerateStructured[AssessmentOutput](
		completer,
		ctx,
		llm.Request{
			Model:  input.LLMModel,
			System: llm.AssessmentSystemPrompt,
			Prompt: prompt,
		},
		input.Attempts,
		ValidateAssessmentOutput,
	)
	if err != nil {
		return nil, fmt.Errorf("assessment task failed: %w", err)
	}

	return result, nil
}
