// Package eslint models ESLint reports and provides the engines and loaders that
// produce them.
package eslint

import (
	"encoding/json"
	"fmt"
)

// Problem severities as reported by ESLint.
const (
	SeverityWarning = 1
	SeverityError   = 2
)

// FixEdit is the candidate replacement ESLint attaches to a problem.
type FixEdit struct {
	// Range holds the [start, end) character offsets into the linted text.
	Range [2]int `json:"range"`

	// Text is the replacement text.
	Text string `json:"text"`
}

// Problem is a single ESLint finding with 1-based coordinates.
type Problem struct {
	// RuleID is the rule that produced the problem. Empty for parse errors.
	RuleID string `json:"ruleId"`

	// Severity is 1 for warnings and 2 for errors.
	Severity int `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Line is the 1-based start line.
	Line int `json:"line"`

	// Column is the 1-based start column.
	Column int `json:"column"`

	// EndLine is the optional 1-based end line.
	EndLine *int `json:"endLine,omitempty"`

	// EndColumn is the optional 1-based end column.
	EndColumn *int `json:"endColumn,omitempty"`

	// Fix is the optional candidate edit.
	Fix *FixEdit `json:"fix,omitempty"`
}

// HasFix reports whether the problem carries an edit and a rule to attribute it to.
func (p *Problem) HasFix() bool {
	return p.Fix != nil && p.RuleID != ""
}

// Result is the report for one linted file.
type Result struct {
	FilePath            string    `json:"filePath"`
	Messages            []Problem `json:"messages"`
	ErrorCount          int       `json:"errorCount"`
	WarningCount        int       `json:"warningCount"`
	FixableErrorCount   int       `json:"fixableErrorCount"`
	FixableWarningCount int       `json:"fixableWarningCount"`
}

// Report is the full output of one engine invocation.
type Report struct {
	Results []Result
}

// Problems returns the problems of the first result, which is the only one when
// linting a single text buffer.
func (r *Report) Problems() []Problem {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	return r.Results[0].Messages
}

// DecodeReport parses the output of ESLint's json formatter.
func DecodeReport(data []byte) (*Report, error) {
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode eslint report: %w", err)
	}
	return &Report{Results: results}, nil
}
