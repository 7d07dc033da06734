package assessment

import "fmt"

// Kind classifies why an assessment could not be produced.
type Kind string

const (
	KindUnavailable Kind = "unavailable" // no backend configured
	KindCall        Kind = "call"        // network, auth, quota or provider failure
	KindDecode      Kind = "decode"      // reply was not the expected JSON
)

// Error is returned by Backend.Assess.
type Error struct {
	Kind    Kind
	Backend string
	Err     error
}

func (e *Error) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("assessment %s error (%s): %v", e.Kind, e.Backend, e.Err)
	}
	return fmt.Sprintf("assessment %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
