package llm

import (
	"fmt"
	"net/http"
)

// LLMError represents an error from the LLM client.
type LLMError struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Provider names the chat provider that failed, when known
	Provider string

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork    = "network"
	ErrorTypeAPI        = "api"
	ErrorTypeAuth       = "auth"
	ErrorTypeValidation = "validation"
	ErrorTypeTimeout    = "timeout"
	ErrorTypeParse      = "parse"
)

// rawReplyPrefix bounds how much of a bad reply ends up in errors and logs.
const rawReplyPrefix = 500

// Error implements the error interface.
func (e *LLMError) Error() string {
	kind := e.Type
	if e.Provider != "" {
		kind = e.Provider + " " + kind
	}
	if e.Code > 0 {
		return fmt.Sprintf("LLM %s error (code %d): %s", kind, e.Code, e.Message)
	}
	return fmt.Sprintf("LLM %s error: %s", kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a new attempt with corrective feedback can help.
func (e *LLMError) Retryable() bool {
	return e.Type == ErrorTypeParse || e.Type == ErrorTypeValidation
}

// NewNetworkError creates a network error.
func NewNetworkError(err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeNetwork,
		Message: "Failed to connect to the AI provider. Check your network connection.",
		Err:     err,
	}
}

// NewAPIError creates an API error with status code. Rejected credentials
// (401, 403) get their own type.
func NewAPIError(code int, message string) *LLMError {
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return &LLMError{
			Type:    ErrorTypeAuth,
			Code:    code,
			Message: "provider rejected the API key. Check the provider's *_API_KEY variable.",
		}
	}
	return &LLMError{
		Type:    ErrorTypeAPI,
		Code:    code,
		Message: fmt.Sprintf("provider API error: %s", truncate(message, rawReplyPrefix)),
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("Validation failed: %s", message),
		Err:     err,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeTimeout,
		Message: "Request timed out. The model may be under heavy load.",
		Err:     err,
	}
}

// NewParseError creates a parse error. Only a prefix of content is kept.
func NewParseError(content string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("Failed to parse LLM output: %s", truncate(content, rawReplyPrefix)),
		Err:     err,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
