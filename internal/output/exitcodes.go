// Package output provides styled terminal output and exit code mapping for
// the clockfill CLI.
package output

import (
	"errors"

	"github.com/bryan-cox/clockfill/internal/model"
)

// Exit codes:
// 0 = every submission succeeded
// 1 = user error (bad input, impossible date, missing or malformed configuration)
// 2 = system error (an external service could not be reached outside the fill loop)
// 3 = partial failure (at least one time entry was rejected)
const (
	ExitSuccess        = 0
	ExitUserError      = 1
	ExitSystemError    = 2
	ExitPartialFailure = 3
)

// ExitCodeFor maps an error returned by a command to a process exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, model.ErrPartialFailure):
		return ExitPartialFailure
	case errors.Is(err, model.ErrTransport):
		return ExitSystemError
	default:
		return ExitUserError
	}
}
