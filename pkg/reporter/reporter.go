// Package reporter writes the results of check and fix runs.
package reporter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/eslintls/pkg/runner"
)

// Reporter writes a run result.
type Reporter interface {
	// Report writes result and returns the number of problems it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// sourceLine returns the 1-based line of source without its line break.
func sourceLine(source []byte, line int) string {
	if line < 1 {
		return ""
	}
	start := 0
	for current := 1; current < line; current++ {
		idx := bytes.IndexByte(source[start:], '\n')
		if idx < 0 {
			return ""
		}
		start += idx + 1
	}
	end := start + bytes.IndexByte(source[start:], '\n')
	if end < start {
		end = len(source)
	}
	text := string(source[start:end])
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	return text
}
