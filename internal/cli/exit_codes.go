package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
)

// Exit codes for the iconlog CLI
// These codes support CI/CD integration (e.g. failing a build on breaking icon changes)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a manifest or changelog failed validation
	ExitValidationFailed = 1

	// ExitBreakingChange indicates diff --fail-on-breaking found removed icons
	ExitBreakingChange = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 4

	// ExitRuntimeError indicates an I/O, git or watcher failure
	ExitRuntimeError = 5
)

// ExitError carries an exit code for a failure whose message was already printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes Execute exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// exitCodeFor maps an error to the exit code for its category.
func exitCodeFor(err error) int {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitRuntimeError
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Manifest:
		return ExitValidationFailed
	default:
		return ExitRuntimeError
	}
}
