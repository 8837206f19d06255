package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/runner"
)

// jsonVersion is bumped on incompatible changes of the output shape.
const jsonVersion = "1"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult holds one file. Messages use ESLint's problem shape.
type JSONFileResult struct {
	Path     string           `json:"path"`
	Messages []eslint.Problem `json:"messages"`
	Fixed    bool             `json:"fixed,omitempty"`
	Skipped  string           `json:"skipped,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// JSONSummary holds the run statistics.
type JSONSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesWithProblems int `json:"filesWithProblems"`
	FilesFixed        int `json:"filesFixed"`
	FilesErrored      int `json:"filesErrored"`
	ErrorCount        int `json:"errorCount"`
	WarningCount      int `json:"warningCount"`
	FixableCount      int `json:"fixableCount"`
	FixedCount        int `json:"fixedCount"`
}

// JSONReporter writes results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSON(result, r.opts)
	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.ErrorCount + output.Summary.WarningCount, nil
}

// BuildJSON converts a run result into its JSON document.
func BuildJSON(result *runner.Result, opts Options) *JSONOutput {
	output := &JSONOutput{Version: jsonVersion, Files: []JSONFileResult{}}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{Path: opts.displayPath(file.Path), Messages: []eslint.Problem{}}
		if file.Error != nil {
			entry.Error = errorMessage(file.Error, file.Path)
		}
		if file.Result != nil {
			if len(file.Result.Problems) > 0 {
				entry.Messages = file.Result.Problems
			}
			entry.Fixed = file.Result.Written
			if file.Result.Skipped {
				entry.Skipped = file.Result.SkipReason
			}
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesWithProblems: stats.FilesWithProblems,
		FilesFixed:        stats.FilesModified,
		FilesErrored:      stats.FilesErrored,
		ErrorCount:        stats.Errors,
		WarningCount:      stats.Warnings,
		FixableCount:      stats.Fixable,
		FixedCount:        stats.Fixed,
	}
	return output
}
