package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"docval/internal/core"
	"docval/internal/repository"
	"docval/pkg/schema"
)

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage compliance models",
	}
	cmd.AddCommand(
		newModelsListCmd(a),
		newModelsShowCmd(a),
		newModelsAddCmd(a),
		newModelsDeleteCmd(a),
	)
	return cmd
}

func (a *app) store() *repository.Store {
	return repository.NewStore(a.cfg.ModelsDir, "cli")
}

func newModelsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored models, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := a.store().List()
			if err != nil {
				return err
			}

			hasDefault := false
			for _, m := range models {
				hasDefault = hasDefault || m.ID == schema.DefaultModelID
			}
			if !hasDefault {
				models = append(models, schema.DefaultModel())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tCREATED\tNAME")
			for _, m := range models {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Kind, m.CreatedAt.Format("2006-01-02 15:04"), m.Name)
			}
			return w.Flush()
		},
	}
}

func newModelsShowCmd(a *app) *cobra.Command {
	var withText bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a model as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := schema.DefaultModelID
			if len(args) == 1 {
				id = args[0]
			}

			m, err := core.ResolveModel(a.store(), id, a.logger)
			if err != nil {
				return err
			}
			if !withText {
				m = m.WithoutReferenceText()
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&withText, "with-text", false, "include the extracted reference text")
	return cmd
}

func newModelsAddCmd(a *app) *cobra.Command {
	var (
		name      string
		id        string
		reference bool
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a model from a JSON/YAML definition or a reference text file",
		Long: "A .json, .yaml or .yml file is read as a structured model definition.\n" +
			"Any other file, or any file with --reference, is stored as the extracted text of a\n" +
			"reference document and validated against the built-in requirement catalog.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read model file: %w", err)
			}

			var m *schema.ComplianceModel
			ext := strings.ToLower(filepath.Ext(path))
			if !reference && (ext == ".json" || ext == ".yaml" || ext == ".yml") {
				m, err = repository.DecodeModel(data, ext)
				if err != nil {
					return &core.ValidationError{Field: "file", Message: fmt.Sprintf("parse %s: %v", filepath.Base(path), err), Err: err}
				}
				if m.Kind == "" {
					m.Kind = schema.ModelKindStructured
				}
				if name != "" {
					m.Name = name
				}
			} else {
				m, err = repository.NewReferenceModel(name, path, string(data))
				if err != nil {
					return &core.ValidationError{Field: "file", Message: err.Error(), Err: err}
				}
			}
			if id != "" {
				m.ID = id
			}

			if err := a.store().Save(m); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "model name (defaults to the file name for reference text)")
	cmd.Flags().StringVar(&id, "id", "", "model id (generated when empty; use \"default\" to replace the default)")
	cmd.Flags().BoolVar(&reference, "reference", false, "treat the file as reference text even if it is JSON or YAML")
	return cmd
}

func newModelsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Delete(args[0]); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return &core.NotFoundError{Resource: "model", ID: args[0], Err: err}
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
