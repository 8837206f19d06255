package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/eslintls/internal/ui/pretty"
	"github.com/yaklabco/eslintls/pkg/fix"
	"github.com/yaklabco/eslintls/pkg/runner"
)

// DiffReporter prints the unified diffs of a dry-run fix.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a DiffReporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of changed files.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	files, additions, deletions := 0, 0, 0
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render("error: "+errorMessage(file.Error, file.Path)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(diff)
	}

	if files > 0 && r.opts.ShowSummary {
		parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
		if additions > 0 {
			parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
		}
		if deletions > 0 {
			parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
		}
		fmt.Fprintln(r.bw, strings.Join(parts, ", "))
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := strings.TrimPrefix(r.opts.displayPath(diff.Path), "/")
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			style := r.styles.DiffContext
			switch line.Kind {
			case fix.DiffLineAdd:
				style = r.styles.DiffAdd
			case fix.DiffLineRemove:
				style = r.styles.DiffRemove
			}
			fmt.Fprintln(r.bw, style.Render(line.Prefix()+line.Content))
		}
	}
	fmt.Fprintln(r.bw)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
