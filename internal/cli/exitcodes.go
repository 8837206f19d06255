package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/eslintls/pkg/runner"
)

// Exit codes for eslintls.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates the run found errors, or the server exited
	// without a shutdown request.
	ExitLintErrors = 1

	// ExitLintWarnings indicates the run found warnings (in strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitError carries a process exit code out of a command. It is not reported
// as a failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.Errors > 0:
		return ExitLintErrors
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.Stats.Warnings > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps a command error to the process exit code.
func ExitCodeFromError(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
