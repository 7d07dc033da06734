package main

import (
	"github.com/spf13/cobra"

	"docval/internal/core"
	"docval/internal/tool"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the validate_document and list_models tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			validator, store, err := core.NewValidatorFromConfig(cmd.Context(), a.cfg, "mcp", a.logger)
			if err != nil {
				return err
			}

			server := tool.NewServer(tool.NewHandlers(validator, store), version)
			a.logger.Info("Starting MCP server", "transport", "stdio", "models_dir", a.cfg.ModelsDir)
			return tool.Serve(cmd.Context(), server)
		},
	}
}
