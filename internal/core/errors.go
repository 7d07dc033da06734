package core

import "fmt"

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing resource, such as a compliance model.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// LLMError represents a failure configuring or running structured assessment.
type LLMError struct {
	Task    string
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("LLM task %s: %s", e.Task, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}
