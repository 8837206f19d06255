package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/eslintls/pkg/diagnostic"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/fix"
	"github.com/yaklabco/eslintls/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the lint-and-fix loop. Fixes dropped because they
// overlapped are picked up by a later pass.
const DefaultMaxFixPasses = 10

// Errors wrapped into per-file failures, for use with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrLintFailure      = errors.New("lint failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineOptions controls how one file is processed.
type PipelineOptions struct {
	// Fix applies overlap-free fix sets until none remain.
	Fix bool

	// DryRun computes a diff instead of writing.
	DryRun bool

	// Backup configures the backup taken before writing.
	Backup fsutil.BackupConfig

	// MaxFixPasses bounds the fix loop. 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	Path string

	// Problems are reported by the last lint pass.
	Problems []eslint.Problem

	// Source is the content the problems refer to.
	Source []byte

	// Modified is set when fixes changed the content.
	Modified bool

	// Content is the fixed content, nil when unmodified.
	Content []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// Skipped is set when the file changed on disk while it was processed.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// FixPasses counts the passes that applied at least one fix.
	FixPasses int

	// FixesApplied counts applied fixes across all passes.
	FixesApplied int
}

// Summary describes the result in a few words.
func (r *PipelineResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "fixed (backup created)"
	case r.Written:
		return "fixed"
	case r.Modified:
		return "changes pending"
	case len(r.Problems) > 0:
		return "problems found"
	default:
		return "ok"
	}
}

// Counts returns the errors, warnings and fixable problems of the last pass.
func (r *PipelineResult) Counts() (errs, warnings, fixable int) {
	for i := range r.Problems {
		problem := &r.Problems[i]
		if problem.Severity == eslint.SeverityError {
			errs++
		} else {
			warnings++
		}
		if problem.HasFix() {
			fixable++
		}
	}
	return errs, warnings, fixable
}

// Pipeline lints one file at a time with the engine the loader resolves for it.
type Pipeline struct {
	Loader eslint.Loader
}

// NewPipeline creates a Pipeline.
func NewPipeline(loader eslint.Loader) *Pipeline {
	return &Pipeline{Loader: loader}
}

// ProcessFile reads path, lints it and, in fix mode, applies fixes in passes
// until the report carries none. In dry-run mode the result holds a diff.
// Otherwise the fixed content is written atomically after a backup, unless the
// file changed on disk in the meantime.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorize(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil || !result.Modified {
		return result, err
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, result.Content)
		return result, nil
	}

	changed, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.Content, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent lints content as the file at path without touching the disk.
// The problems of the result are those of the final content.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts PipelineOptions) (*PipelineResult, error) {
	uri := eslint.URIFromPath(path)
	engine, err := p.Loader.Resolve(ctx, uri)
	if err != nil {
		return nil, err
	}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	result := &PipelineResult{Path: path}
	text := string(content)
	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing canceled: %w", err)
		}

		report, err := engine.Lint(ctx, text, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
		}
		result.Problems = report.Problems()
		if !opts.Fix || pass == maxPasses {
			break
		}

		fixes := overlapFree(uri, pass, result.Problems)
		if len(fixes) == 0 {
			break
		}
		fixed, err := fix.ApplyFixes(text, fixes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
		}
		if fixed == text {
			break
		}
		text = fixed
		result.FixPasses++
		result.FixesApplied += len(fixes)
		result.Modified = true
	}

	result.Source = []byte(text)
	if result.Modified {
		result.Content = result.Source
	}
	return result, nil
}

// overlapFree records the fixes of problems the way the server does and selects
// a set that can be applied together.
func overlapFree(uri string, version int, problems []eslint.Problem) []fix.AutoFix {
	registry := fix.NewRegistry()
	for _, problem := range problems {
		registry.Record(uri, version, diagnostic.FromProblem(problem), problem)
	}
	return registry.Resolver(uri).OverlapFree()
}

func categorize(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
