// Package tool exposes document validation to agents over the Model Context
// Protocol.
package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docval/internal/core"
	"docval/pkg/schema"
)

// DocumentValidator is implemented by *core.Validator.
type DocumentValidator interface {
	Validate(ctx context.Context, req core.Request) (*schema.Verdict, error)
}

// ModelLister is implemented by *repository.Store.
type ModelLister interface {
	List() ([]*schema.ComplianceModel, error)
}

// Handlers holds the dependencies of the docval tools.
type Handlers struct {
	validator DocumentValidator
	models    ModelLister
}

// NewHandlers creates tool handlers. models may be nil, in which case only
// the built-in catalog is listed.
func NewHandlers(validator DocumentValidator, models ModelLister) *Handlers {
	return &Handlers{validator: validator, models: models}
}

// NewServer creates an MCP server with every docval tool registered.
func NewServer(h *Handlers, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "docval", Version: version}, nil)
	mcp.AddTool(server, MetadataValidateDocument, h.ValidateDocument)
	mcp.AddTool(server, MetadataListModels, h.ListModels)
	return server
}

// Serve runs server over stdio until ctx is done or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// MetadataValidateDocument describes the validate_document tool.
var MetadataValidateDocument = &mcp.Tool{
	Name: "validate_document",
	Description: "Validate the extracted text of a legal qualification document against a compliance model. " +
		"Returns which of the ten mandatory requirements are met, missing or doubtful, per-requirement " +
		"evidence, and an overall APROVADO/REPROVADO status. Rule-based scoring always runs; " +
		"structured AI assessment is added when configured and use_ai is not false.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Plain text extracted from the submitted document",
			},
			"model_id": map[string]interface{}{
				"type":        "string",
				"description": "Compliance model to validate against. Omit or use \"default\" for the default catalog.",
			},
			"use_ai": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether to run structured AI assessment. Defaults to true.",
			},
		},
	},
}

// InputValidateDocument is the input for the ValidateDocument tool.
type InputValidateDocument struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
	UseAI   *bool  `json:"use_ai"`
}

// OutputValidateDocument is the output for the ValidateDocument tool.
type OutputValidateDocument struct {
	OverallStatus string            `json:"overall_status"`
	Met           []string          `json:"met"`
	Missing       []string          `json:"missing"`
	Doubtful      []string          `json:"doubtful"`
	Evidence      map[string]string `json:"evidence"`
	Rationale     string            `json:"rationale,omitempty"`
	ModelID       string            `json:"model_id"`
	ModelName     string            `json:"model_name"`
	AIUsed        bool              `json:"ai_used"`
}

// ValidateDocument runs the validator over input.Text.
func (h *Handlers) ValidateDocument(ctx context.Context, _ *mcp.CallToolRequest, input InputValidateDocument) (*mcp.CallToolResult, OutputValidateDocument, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputValidateDocument{}, fmt.Errorf("text is required")
	}

	useAI := true
	if input.UseAI != nil {
		useAI = *input.UseAI
	}

	verdict, err := h.validator.Validate(ctx, core.Request{
		Text:    input.Text,
		ModelID: input.ModelID,
		UseAI:   useAI,
	})
	if err != nil {
		return nil, OutputValidateDocument{}, err
	}

	return nil, outputFromVerdict(verdict), nil
}

func outputFromVerdict(v *schema.Verdict) OutputValidateDocument {
	out := OutputValidateDocument{
		OverallStatus: string(v.OverallStatus),
		Met:           keyStrings(v.Met),
		Missing:       keyStrings(v.Missing),
		Doubtful:      keyStrings(v.Doubtful),
		Evidence:      make(map[string]string, len(v.Evidence)),
		Rationale:     v.Rationale,
		ModelID:       v.ModelID,
		ModelName:     v.ModelName,
		AIUsed:        v.AIUsed,
	}
	for k, e := range v.Evidence {
		out.Evidence[string(k)] = e
	}
	return out
}

func keyStrings(keys []schema.RequirementKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// MetadataListModels describes the list_models tool.
var MetadataListModels = &mcp.Tool{
	Name:        "list_models",
	Description: "List the compliance models available to validate_document, newest first, including the built-in default.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}

// InputListModels is the input for the ListModels tool.
type InputListModels struct{}

// ModelSummary describes one compliance model.
type ModelSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

// OutputListModels is the output for the ListModels tool.
type OutputListModels struct {
	Models []ModelSummary `json:"models"`
}

// ListModels returns the stored models followed by the built-in catalog,
// unless a stored model already overrides the default id.
func (h *Handlers) ListModels(ctx context.Context, _ *mcp.CallToolRequest, _ InputListModels) (*mcp.CallToolResult, OutputListModels, error) {
	var models []*schema.ComplianceModel
	if h.models != nil {
		stored, err := h.models.List()
		if err != nil {
			return nil, OutputListModels{}, fmt.Errorf("list models: %w", err)
		}
		models = stored
	}

	out := OutputListModels{Models: []ModelSummary{}}
	hasDefault := false
	for _, m := range models {
		hasDefault = hasDefault || m.ID == schema.DefaultModelID
		out.Models = append(out.Models, summarize(m))
	}
	if !hasDefault {
		out.Models = append(out.Models, summarize(schema.DefaultModel()))
	}
	return nil, out, nil
}

func summarize(m *schema.ComplianceModel) ModelSummary {
	return ModelSummary{
		ID:        m.ID,
		Name:      m.Name,
		Kind:      string(m.Kind),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
