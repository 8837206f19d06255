package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the offending source line under each problem.
	ShowContext bool

	// ShowSummary appends run statistics.
	ShowSummary bool

	// Compact minifies JSON output.
	Compact bool

	// WorkingDir makes displayed paths relative. Empty keeps them as they are.
	WorkingDir string

	// Width overrides the terminal width used by the table format.
	Width int
}

// DefaultOptions returns text output with context and a summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}

// displayPath returns path relative to the working directory, unless that
// would climb out of it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
