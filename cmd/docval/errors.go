package main

import (
	"errors"

	"docval/internal/core"
)

// errRejected makes validate --strict exit non-zero without printing twice.
var errRejected = errors.New("document rejected")

// Exit codes: 1 generic failure, 2 bad input, 3 unknown model, 4 rejected.
func exitCode(err error) int {
	var vErr *core.ValidationError
	var nfErr *core.NotFoundError
	switch {
	case errors.Is(err, errRejected):
		return 4
	case errors.As(err, &nfErr):
		return 3
	case errors.As(err, &vErr):
		return 2
	}
	return 1
}
