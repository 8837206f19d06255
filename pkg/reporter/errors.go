package reporter

import (
	"errors"

	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/status"
)

// errorMessage renders a per-file failure. ESLint's own message is preferred
// over the wrapping added by the pipeline.
func errorMessage(err error, path string) string {
	var lintErr *eslint.LintError
	if errors.As(err, &lintErr) {
		return status.Sanitize(lintErr, path)
	}
	return err.Error()
}
