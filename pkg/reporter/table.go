package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/yaklabco/eslintls/internal/ui/pretty"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/runner"
)

const (
	defaultTermWidth = 100
	minMessageWidth  = 20
	columnGap        = 2
	fixableMark      = "✓"
)

type tableRow struct {
	file, location, severity, message, rule, fixable string
	problem                                          eslint.Problem
}

// TableReporter prints one row per problem, sized to the terminal.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTableReporter creates a TableReporter.
func NewTableReporter(opts Options) *TableReporter {
	width := opts.Width
	if width <= 0 {
		width = terminalWidth(opts.Writer)
	}
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	rows := r.rows(result)
	if len(rows) > 0 {
		r.writeTable(rows)
	}
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render("error: "+errorMessage(file.Error, file.Path)))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		if result.Stats.Fixable > 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("Run eslintls fix to apply the fixable problems."))
		}
	}
	return len(rows), nil
}

func (r *TableReporter) rows(result *runner.Result) []tableRow {
	var rows []tableRow
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		path := r.opts.displayPath(file.Path)
		for _, problem := range file.Result.Problems {
			row := tableRow{
				file:     path,
				location: fmt.Sprintf("%d:%d", problem.Line, problem.Column),
				severity: "error",
				message:  strings.Join(strings.Fields(problem.Message), " "),
				rule:     problem.RuleID,
				problem:  problem,
			}
			if problem.Severity == eslint.SeverityWarning {
				row.severity = "warning"
			}
			if problem.HasFix() {
				row.fixable = fixableMark
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (r *TableReporter) writeTable(rows []tableRow) {
	header := tableRow{file: "FILE", location: "LOC", severity: "SEVERITY", message: "MESSAGE", rule: "RULE", fixable: "FIX"}

	widths := columnWidths(append([]tableRow{header}, rows...))
	fixed := widths[0] + widths[1] + widths[2] + widths[4] + widths[5] + 5*columnGap
	widths[3] = max(minMessageWidth, min(widths[3], r.width-fixed))

	line := func(row tableRow) []string {
		return []string{
			padRight(row.file, widths[0]),
			padRight(row.location, widths[1]),
			padRight(row.severity, widths[2]),
			padRight(truncateEnd(row.message, widths[3]), widths[3]),
			padRight(row.rule, widths[4]),
			row.fixable,
		}
	}
	gap := strings.Repeat(" ", columnGap)

	fmt.Fprintln(r.bw, r.styles.TableHeader.Render(strings.TrimRight(strings.Join(line(header), gap), " ")))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", min(r.width, fixed+widths[3]))))
	for _, row := range rows {
		cells := line(row)
		cells[0] = r.styles.FilePath.Render(cells[0])
		cells[1] = r.styles.Location.Render(cells[1])
		if row.problem.Severity == eslint.SeverityWarning {
			cells[2] = r.styles.Warning.Render(cells[2])
		} else {
			cells[2] = r.styles.Error.Render(cells[2])
		}
		cells[4] = r.styles.RuleID.Render(cells[4])
		cells[5] = r.styles.Fixable.Render(cells[5])
		fmt.Fprintln(r.bw, strings.TrimRight(strings.Join(cells, gap), " "))
	}
}

func columnWidths(rows []tableRow) [6]int {
	var widths [6]int
	for _, row := range rows {
		for i, cell := range []string{row.file, row.location, row.severity, row.message, row.rule, row.fixable} {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// truncateEnd shortens s to limit runes, marking the cut with an ellipsis.
func truncateEnd(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func terminalWidth(writer io.Writer) int {
	if file, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
