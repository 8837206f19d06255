package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/eslintls/pkg/eslint"
)

// FormatProblem renders one problem as "  line:col  severity  message  rule".
// When sourceLine is set it is printed below with a caret under the column.
func (s *Styles) FormatProblem(problem eslint.Problem, sourceLine string) string {
	var builder strings.Builder

	rule := problem.RuleID
	if problem.HasFix() {
		rule += s.Fixable.Render(" (fixable)")
	}
	severity := s.FormatSeverity(problem.Severity)
	if problem.Severity != eslint.SeverityWarning {
		severity += "  "
	}
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%d:%d", problem.Line, problem.Column)),
		severity,
		s.Message.Render(problem.Message),
		s.RuleID.Render(rule),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, problem.Column))
	}
	return builder.String()
}

// FormatSeverity renders an ESLint severity.
func (s *Styles) FormatSeverity(severity int) string {
	if severity == eslint.SeverityWarning {
		return s.Warning.Render("warning")
	}
	return s.Error.Render("error")
}

// FormatSourceContext renders line with a caret under the 1-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "      "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader renders the heading of a file's problems.
func (s *Styles) FormatFileHeader(path string, problems int) string {
	header := s.FilePath.Render(path)
	if problems > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", problems, plural(problems, "problem", "problems")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
