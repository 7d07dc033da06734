package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docval/internal/core"
	"docval/internal/report"
	"docval/pkg/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		modelID    string
		file       string
		noAI       bool
		reportPath string
		format     string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate extracted document text",
		Long: "Validate the plain text of a document, read from --file or stdin, against a compliance model.\n" +
			"The verdict is printed to stdout; --report also writes it to a file (.md, .json or .yaml).",
		Example: "  pdftotext proposta.pdf - | docval validate\n" +
			"  docval validate --file proposta.txt --model MOD-abc123 --report relatorio.md",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return &core.ValidationError{Field: "format", Message: err.Error(), Err: err}
			}

			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			validator, _, err := core.NewValidatorFromConfig(cmd.Context(), a.cfg, "cli", a.logger)
			if err != nil {
				return err
			}

			verdict, err := validator.Validate(cmd.Context(), core.Request{
				Text:    text,
				ModelID: modelID,
				UseAI:   !noAI,
			})
			if err != nil {
				return err
			}

			if reportPath != "" {
				if err := report.WriteFile(reportPath, verdict); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				a.logger.Info("Report written", "path", reportPath)
			}

			if err := report.Write(cmd.OutOrStdout(), outFormat, verdict); err != nil {
				return err
			}

			if strict && verdict.OverallStatus != schema.StatusApproved {
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelID, "model", "m", schema.DefaultModelID, "compliance model id")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "text file to validate, - for stdin")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip structured AI assessment")
	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "also write the verdict to this file")
	cmd.Flags().StringVarP(&format, "format", "o", "json", "stdout format: json, yaml or markdown")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 4 unless the document is APROVADO")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}
