package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/eslintls/pkg/fsutil"
)

// Runner processes the files of a run through a Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a Runner.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// PipelineOptionsFromOptions derives the per-file options of a run.
func PipelineOptionsFromOptions(opts Options) PipelineOptions {
	pipelineOpts := PipelineOptions{Fix: opts.Fix}
	if opts.Config != nil {
		pipelineOpts.DryRun = opts.Config.DryRun
		pipelineOpts.Backup = fsutil.BackupConfigFromConfig(opts.Config)
	}
	return pipelineOpts
}

// Run discovers the files of opts and processes up to opts.Jobs of them at
// once. Per-file failures are recorded in the result. Outcomes are in
// discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := PipelineOptionsFromOptions(opts)
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(min(opts.jobs(), len(files)))
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			processed, err := r.Pipeline.ProcessFile(groupCtx, path, pipelineOpts)
			outcomes[i] = FileOutcome{Path: path, Result: processed, Error: err}
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if waitErr != nil {
		return result, fmt.Errorf("run canceled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run canceled: %w", err)
	}
	return result, nil
}
