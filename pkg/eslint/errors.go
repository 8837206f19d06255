package eslint

import (
	"errors"
	"fmt"
	"strings"
)

// NoConfigTemplate is the message template ESLint uses when no configuration applies.
const NoConfigTemplate = "no-config-found"

// LintError is a failure raised by an engine while linting.
type LintError struct {
	// Message is the error text reported by ESLint. May be empty.
	Message string

	// MessageTemplate is ESLint's structured template tag, when known.
	MessageTemplate string

	// Err is the underlying process or decoding error.
	Err error
}

func (e *LintError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "eslint failed"
}

func (e *LintError) Unwrap() error {
	return e.Err
}

// LibraryLoadError describes a failure to locate or load ESLint for a document.
type LibraryLoadError struct {
	URI string
	Dir string
	Err error
}

func (e *LibraryLoadError) Error() string {
	return fmt.Sprintf("failed to load eslint library for %s (searched from %s): %v", e.URI, e.Dir, e.Err)
}

func (e *LibraryLoadError) Unwrap() error {
	return e.Err
}

// ErrLibraryNotFound is returned when no eslint executable could be located.
var ErrLibraryNotFound = errors.New("eslint executable not found")

// MessageOf returns the message an error carries. The boolean is false when the error
// carries no message at all.
func MessageOf(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var lintErr *LintError
	if errors.As(err, &lintErr) {
		return lintErr.Message, lintErr.Message != ""
	}
	msg := err.Error()
	return msg, msg != ""
}

// TemplateOf returns the message template of a LintError, or "".
func TemplateOf(err error) string {
	var lintErr *LintError
	if errors.As(err, &lintErr) {
		return lintErr.MessageTemplate
	}
	return ""
}

// crashBanner is the preamble the ESLint CLI prints before fatal errors.
const crashBanner = "Oops! Something went wrong! :("

// parseFailure turns the stderr of a failed ESLint run into a LintError.
func parseFailure(stderr string, cause error) *LintError {
	msg := strings.TrimSpace(stderr)
	if strings.HasPrefix(msg, crashBanner) {
		msg = strings.TrimSpace(strings.TrimPrefix(msg, crashBanner))
		// Drop the "ESLint: x.y.z" version line that follows the banner.
		if strings.HasPrefix(msg, "ESLint: ") {
			if idx := strings.Index(msg, "\n"); idx >= 0 {
				msg = strings.TrimSpace(msg[idx+1:])
			} else {
				msg = ""
			}
		}
	}
	msg = strings.ReplaceAll(msg, "\r\n", "\n")

	lintErr := &LintError{Message: msg, Err: cause}
	if strings.Contains(msg, "couldn't find a configuration file") ||
		strings.HasPrefix(msg, "No ESLint configuration found") {
		lintErr.MessageTemplate = NoConfigTemplate
	}
	return lintErr
}
