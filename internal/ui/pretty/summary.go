package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/eslintls/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine renders run statistics on one line, for example
// "3 problems (2 errors, 1 warning) in 2 files, 1 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.Problems == 0 {
		parts = append(parts, s.Success.Render("No problems found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	} else {
		var severities []string
		if stats.Errors > 0 {
			severities = append(severities, s.Error.Render(fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors"))))
		}
		if stats.Warnings > 0 {
			severities = append(severities, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
		}
		parts = append(parts, fmt.Sprintf("%d %s (%s) in %d %s",
			stats.Problems, plural(stats.Problems, "problem", "problems"),
			strings.Join(severities, ", "),
			stats.FilesWithProblems, plural(stats.FilesWithProblems, "file", "files")))
		if stats.Fixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.Fixable)))
		}
	}

	if stats.Fixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.Fixed, stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")
	row("Files checked", stats.FilesProcessed, s.Bold.Render)
	if stats.FilesWithProblems > 0 {
		row("Files with problems", stats.FilesWithProblems, s.Failure.Render)
	}
	if stats.FilesModified > 0 {
		row("Files fixed", stats.FilesModified, s.Success.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}
	builder.WriteString("\n")
	row("Problems", stats.Problems, s.Bold.Render)
	if stats.Errors > 0 {
		row("  Errors", stats.Errors, s.Error.Render)
	}
	if stats.Warnings > 0 {
		row("  Warnings", stats.Warnings, s.Warning.Render)
	}
	builder.WriteString("\n")

	switch {
	case stats.Errors > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Lint passed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")
	return builder.String()
}
