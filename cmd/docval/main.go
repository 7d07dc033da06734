// Command docval validates legal qualification documents against compliance
// models.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docval/internal/core"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type app struct {
	cfg    *core.Config
	logger core.Logger

	modelsDir string
	logLevel  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "docval",
		Short:         "Validate legal qualification documents against compliance models",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.modelsDir, "models-dir", "", "model store directory (overrides MODELS_DIR)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(
		newValidateCmd(a),
		newModelsCmd(a),
		newMCPCmd(a),
		newCheckAICmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := core.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.modelsDir != "" {
		cfg.ModelsDir = a.modelsDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.logger = core.InstallDefault(cfg.LogLevel)
	return nil
}
