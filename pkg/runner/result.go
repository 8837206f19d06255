package runner

// FileOutcome is the result of one file. Exactly one of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	// FilesWithProblems counts files with at least one problem left.
	FilesWithProblems int

	// FilesModified counts files written with fixes.
	FilesModified int

	Problems int
	Errors   int
	Warnings int
	Fixable  int

	// Fixed counts fixes applied across all files.
	Fixed int
}

// Result is the outcome of a run.
type Result struct {
	// Files are in discovery order.
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file has error severity problems or could
// not be processed.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.Errors > 0 || r.Stats.FilesErrored > 0)
}

// HasIssues reports whether any problem was reported.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Problems > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	processed := outcome.Result
	r.Stats.FilesProcessed++
	if processed.Skipped {
		r.Stats.FilesSkipped++
	}
	if processed.Written {
		r.Stats.FilesModified++
	}
	r.Stats.Fixed += processed.FixesApplied

	errs, warnings, fixable := processed.Counts()
	r.Stats.Errors += errs
	r.Stats.Warnings += warnings
	r.Stats.Fixable += fixable
	r.Stats.Problems += errs + warnings
	if errs+warnings > 0 {
		r.Stats.FilesWithProblems++
	}
}
