package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewModelID generates a new compliance model ID in format MOD-{nanoid(10)}.
func NewModelID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("MOD-%s", id), nil
}
