// Package diagnostic converts ESLint problems into editor diagnostics.
package diagnostic

import (
	"fmt"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/pkg/eslint"
)

// Source is the source tag attached to every diagnostic.
const Source = "eslint"

// FromProblem converts a problem into a diagnostic. It never fails: coordinates are
// shifted to 0-based and clamped at zero, and a missing end collapses the range onto
// its start.
func FromProblem(problem eslint.Problem) lsp.Diagnostic {
	message := problem.Message
	if problem.RuleID != "" {
		message = fmt.Sprintf("%s (%s)", problem.Message, problem.RuleID)
	}

	start := lsp.Position{
		Line:      toZeroBased(problem.Line),
		Character: toZeroBased(problem.Column),
	}
	end := start
	if problem.EndLine != nil {
		end.Line = toZeroBased(*problem.EndLine)
	}
	if problem.EndColumn != nil {
		end.Character = toZeroBased(*problem.EndColumn)
	}

	return lsp.Diagnostic{
		Range:    lsp.Range{Start: start, End: end},
		Severity: Severity(problem.Severity),
		Code:     problem.RuleID,
		Source:   Source,
		Message:  message,
	}
}

// FromProblems converts every problem in order.
func FromProblems(problems []eslint.Problem) []lsp.Diagnostic {
	diags := make([]lsp.Diagnostic, 0, len(problems))
	for _, problem := range problems {
		diags = append(diags, FromProblem(problem))
	}
	return diags
}

// Severity maps an ESLint severity to an editor severity. Only warnings map to
// Warning; everything else is an Error.
func Severity(severity int) lsp.DiagnosticSeverity {
	if severity == eslint.SeverityWarning {
		return lsp.Warning
	}
	return lsp.Error
}

// Key identifies a diagnostic by its range and code. It joins a diagnostic to the fix
// recorded for it, so two diagnostics with equal ranges and rules share a key.
func Key(diag lsp.Diagnostic) string {
	return fmt.Sprintf("[%d,%d]-[%d,%d]-%s",
		diag.Range.Start.Line, diag.Range.Start.Character,
		diag.Range.End.Line, diag.Range.End.Character,
		diag.Code)
}

func toZeroBased(value int) int {
	return max(0, value-1)
}
