package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/eslintls/internal/ui/pretty"
	"github.com/yaklabco/eslintls/pkg/runner"
)

// TextReporter groups problems by file, the way ESLint's stylish formatter does.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	total := 0
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s\n  %s  %s\n\n", r.styles.FilePath.Render(path),
				r.styles.Error.Render("error"), r.styles.Message.Render(errorMessage(file.Error, file.Path)))
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "%s  %s\n", r.styles.FilePath.Render(path), r.styles.Dim.Render(file.Result.Summary()))
		}

		problems := file.Result.Problems
		if len(problems) == 0 {
			continue
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(problems)))
		for _, problem := range problems {
			var line string
			if r.opts.ShowContext {
				line = sourceLine(file.Result.Source, problem.Line)
			}
			fmt.Fprint(r.bw, r.styles.FormatProblem(problem, line))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}
