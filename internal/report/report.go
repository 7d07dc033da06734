// Package report renders validation verdicts for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"docval/pkg/schema"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts json, yaml/yml and markdown/md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or markdown)", s)
}

// FormatForPath picks a format from a file extension, defaulting to Markdown.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatMarkdown
}

// Write renders v to w in the given format.
func Write(w io.Writer, format Format, v *schema.Verdict) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatMarkdown:
		return WriteMarkdown(w, v, time.Now())
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteFile renders v into path, choosing the format from its extension.
func WriteFile(path string, v *schema.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, FormatForPath(path), v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, v *schema.Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v *schema.Verdict) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMarkdown writes the human-readable report: status, the three
// requirement buckets, evidence and a summary table.
func WriteMarkdown(w io.Writer, v *schema.Verdict, generatedAt time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Relatório de Validação de Documento\n\n")
	fmt.Fprintf(&b, "Gerado em: %s\n\n", generatedAt.Format("02/01/2006 15:04:05"))
	if v.ModelName != "" {
		fmt.Fprintf(&b, "Modelo: %s (`%s`)\n\n", v.ModelName, v.ModelID)
	}

	fmt.Fprintf(&b, "## STATUS: %s\n\n", v.OverallStatus)
	if v.Rationale != "" {
		fmt.Fprintf(&b, "> %s\n\n", oneLine(v.Rationale))
	}

	writeBucket(&b, "Requisitos Atendidos", v.Met, v)
	writeBucket(&b, "Requisitos Não Comprovados", v.Missing, v)
	writeBucket(&b, "Requisitos Parcialmente Comprovados", v.Doubtful, v)

	if len(v.Evidence) > 0 {
		fmt.Fprintf(&b, "## Evidências Encontradas\n\n")
		for _, key := range evidenceOrder(v.Evidence) {
			fmt.Fprintf(&b, "### %s\n", key)
			for _, line := range strings.Split(v.Evidence[key], "\n") {
				if line = strings.TrimSpace(line); line != "" {
					fmt.Fprintf(&b, "%s\n", line)
				}
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	fmt.Fprintf(&b, "## Resumo da Validação\n\n")
	fmt.Fprintf(&b, "| Categoria | Quantidade |\n")
	fmt.Fprintf(&b, "|---|---|\n")
	fmt.Fprintf(&b, "| Requisitos Atendidos | %d |\n", len(v.Met))
	fmt.Fprintf(&b, "| Requisitos Não Comprovados | %d |\n", len(v.Missing))
	fmt.Fprintf(&b, "| Requisitos Parcialmente Comprovados | %d |\n", len(v.Doubtful))
	fmt.Fprintf(&b, "| Status Final | %s |\n", v.OverallStatus)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBucket(b *strings.Builder, title string, keys []schema.RequirementKey, v *schema.Verdict) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for i, key := range keys {
		line := string(key)
		if s, ok := v.Scores[key]; ok {
			if s.Requirement != "" {
				line += ": " + oneLine(s.Requirement)
			}
			if s.MaxPoints > 0 {
				line += fmt.Sprintf(" (%d/%d)", s.Points, s.MaxPoints)
			}
		}
		fmt.Fprintf(b, "%d. %s\n", i+1, line)
	}
	fmt.Fprintf(b, "\n")
}

// evidenceOrder lists mandatory keys first, in catalog order, then any
// other keys alphabetically.
func evidenceOrder(evidence map[schema.RequirementKey]string) []schema.RequirementKey {
	keys := make([]schema.RequirementKey, 0, len(evidence))
	seen := make(map[schema.RequirementKey]bool)
	for _, k := range schema.MandatoryKeys() {
		if _, ok := evidence[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []schema.RequirementKey
	for k := range evidence {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(keys, rest...)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
