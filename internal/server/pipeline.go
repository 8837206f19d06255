package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sourcegraph/go-lsp"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/internal/metrics"
	"github.com/yaklabco/eslintls/pkg/diagnostic"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/status"
)

// job is a document snapshot queued for validation under a generation taken when
// the request arrived.
type job struct {
	doc Document
	gen uint64
}

// outcome is the result of linting one document.
type outcome struct {
	// skipped is set when no engine could be resolved.
	skipped bool

	// failure is set when the engine failed.
	failure *status.Failure

	// stale is set when a newer validation superseded this one.
	stale bool
}

// lintDocument lints doc and, when the validation is still current, replaces its
// recorded fixes and published diagnostics.
func (h *Handler) lintDocument(ctx context.Context, doc Document, gen uint64) outcome {
	logger := logging.FromContext(ctx).With(logging.FieldURI, doc.URI, logging.FieldGeneration, gen)

	engine, err := h.state.Loader().Resolve(ctx, doc.URI)
	if err != nil {
		logger.Debug("no eslint library", logging.FieldError, err)
		if h.state.Dedup.MarkNoLibrary(doc.URI) {
			h.client.NoLibrary(ctx, doc.URI)
		}
		return outcome{skipped: true}
	}

	path, _ := eslint.PathFromURI(doc.URI)
	report, err := engine.Lint(ctx, doc.Text, path)
	if err != nil {
		return outcome{failure: &status.Failure{URI: doc.URI, Path: path, Err: err, Engine: engine}}
	}

	problems := report.Problems()
	committed := h.state.Commit(doc.URI, gen, func() {
		h.state.Fixes.Clear(doc.URI)
		diags := make([]lsp.Diagnostic, 0, len(problems))
		for _, problem := range problems {
			diag := diagnostic.FromProblem(problem)
			h.state.Fixes.Record(doc.URI, doc.Version, diag, problem)
			diags = append(diags, diag)
		}
		h.client.PublishDiagnostics(ctx, doc.URI, diags)
	})
	if !committed {
		logger.Debug("dropping superseded validation result")
		return outcome{stale: true}
	}

	logger.Debug("validated", logging.FieldDiagnostics, len(problems))
	return outcome{}
}

// validateSingle validates one document and publishes the resulting status. Every
// failure is classified; the chain always yields warn or error.
func (h *Handler) validateSingle(ctx context.Context, next job) {
	start := time.Now()
	doc, gen := next.doc, next.gen

	result := h.lintDocument(ctx, doc, gen)
	if result.skipped || result.stale {
		return
	}

	state := status.OK
	if result.failure != nil {
		var kind status.Kind
		state, kind, _ = h.singleChain.Classify(ctx, *result.failure)
		h.metrics.ObserveFailure(string(kind))
		if !h.state.IsCurrent(doc.URI, gen) {
			return
		}
	}

	h.metrics.ObserveValidation(metrics.ModeSingle, state.String(), time.Since(start))
	h.client.Status(ctx, state)
}

// validateMany validates jobs concurrently. Failures no classifier handles are
// collected and shown once after every document settled; the worst status is
// published last.
func (h *Handler) validateMany(ctx context.Context, jobs []job) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	var tracker status.MessageTracker
	results := make([]status.Status, len(jobs))

	// Documents that could not be validated at all. Their status is error.
	var (
		mu     sync.Mutex
		failed *multierror.Error
	)
	abort := func(idx int, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = multierror.Append(failed, err)
		results[idx] = status.Error
	}

	var group errgroup.Group
	group.SetLimit(h.state.Config().Workers())
	for idx, next := range jobs {
		results[idx] = status.OK
		doc := next.doc
		group.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					abort(idx, fmt.Errorf("validate %s: panic: %v", doc.URI, r))
				}
			}()
			if err := ctx.Err(); err != nil {
				abort(idx, fmt.Errorf("validate %s: %w", doc.URI, err))
				return nil
			}

			result := h.lintDocument(ctx, doc, next.gen)
			if result.failure == nil {
				return nil
			}

			state, kind, ok := h.batchChain.Classify(ctx, *result.failure)
			h.metrics.ObserveFailure(string(kind))
			if !ok {
				tracker.Add(status.Sanitize(result.failure.Err, result.failure.Path))
				state = status.Error
			}
			results[idx] = state
			return nil
		})
	}
	_ = group.Wait()

	if err := failed.ErrorOrNil(); err != nil {
		logger.Error("batch validation incomplete", logging.FieldDocuments, len(jobs), logging.FieldFailed, failed.Len(), logging.FieldError, err)
	}

	state := status.OK
	for _, result := range results {
		state = status.Worst(state, result)
	}

	tracker.Flush(ctx, h.client)
	h.metrics.ObserveValidation(metrics.ModeBatch, state.String(), time.Since(start))
	h.client.Status(ctx, state)
}
