package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/eslintls/internal/ui/pretty"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/runner"
)

const (
	summaryWidth   = 80
	nameColWidth   = 50
	countColWidth  = 8
	maxNameLength  = 48
	parseErrorRule = "(parse error)"
)

// Tally counts the problems of one rule or one file.
type Tally struct {
	Name     string
	Errors   int
	Warnings int
	Fixable  int
}

// Total returns the number of problems.
func (t Tally) Total() int {
	return t.Errors + t.Warnings
}

// Tallies groups the problems of a run by rule and by file. Both are sorted
// by descending count, then by name.
func Tallies(result *runner.Result, opts Options) (byRule, byFile []Tally) {
	rules := make(map[string]*Tally)
	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Problems) == 0 {
			continue
		}
		fileTally := Tally{Name: opts.displayPath(file.Path)}
		for _, problem := range file.Result.Problems {
			name := problem.RuleID
			if name == "" {
				name = parseErrorRule
			}
			rule, ok := rules[name]
			if !ok {
				rule = &Tally{Name: name}
				rules[name] = rule
			}
			count(rule, problem)
			count(&fileTally, problem)
		}
		byFile = append(byFile, fileTally)
	}
	for _, rule := range rules {
		byRule = append(byRule, *rule)
	}

	order := func(a, b Tally) int {
		if c := cmp.Compare(b.Total(), a.Total()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	}
	slices.SortFunc(byRule, order)
	slices.SortFunc(byFile, order)
	return byRule, byFile
}

func count(tally *Tally, problem eslint.Problem) {
	if problem.Severity == eslint.SeverityWarning {
		tally.Warnings++
	} else {
		tally.Errors++
	}
	if problem.HasFix() {
		tally.Fixable++
	}
}

// SummaryReporter prints problem counts per rule and per file.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a SummaryReporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.Problems == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No problems found"))
		return 0, nil
	}

	byRule, byFile := Tallies(result, r.opts)
	r.table("Rules", "Rule", byRule)
	fmt.Fprintln(r.bw)
	r.table("Files", "File", byFile)
	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats))
	return result.Stats.Problems, nil
}

func (r *SummaryReporter) table(title, column string, tallies []Tally) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))

	fmt.Fprintln(r.bw, r.styles.Bold.Render(title))
	fmt.Fprintln(r.bw, separator)
	fmt.Fprintln(r.bw, r.styles.TableHeader.Render(padRight(column, nameColWidth)+
		padLeft("Errors", countColWidth)+padLeft("Warnings", countColWidth+2)+padLeft("Fixable", countColWidth)))
	fmt.Fprintln(r.bw, separator)

	for _, tally := range tallies {
		name := truncate(tally.Name, maxNameLength)
		styled := padRight(name, nameColWidth)
		switch {
		case tally.Errors > 0:
			styled = r.styles.Error.Render(styled)
		case tally.Warnings > 0:
			styled = r.styles.Warning.Render(styled)
		}
		fmt.Fprintln(r.bw, styled+
			padLeft(strconv.Itoa(tally.Errors), countColWidth)+
			padLeft(strconv.Itoa(tally.Warnings), countColWidth+2)+
			padLeft(strconv.Itoa(tally.Fixable), countColWidth))
	}
}

// padRight and padLeft work on plain text; style after padding.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate keeps the tail of long names, which for paths is the file name.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return "…" + string(runes[len(runes)-limit+1:])
}
