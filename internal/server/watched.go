package server

import (
	"context"
	"path/filepath"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/eslint"
)

// sentinelFile is the file name used to check whether a configuration loads again.
const sentinelFile = "___test___.js"

// didChangeWatchedFiles forgets no-config and missing-library notices, re-checks
// configuration files that failed to load, then revalidates every open document.
func (h *Handler) didChangeWatchedFiles(ctx context.Context, changes []FileEvent) {
	h.state.Dedup.ResetNoConfig()
	h.state.ForgetLibraries()

	var paths []string
	for _, change := range changes {
		path, err := eslint.PathFromURI(string(change.URI))
		if err != nil {
			logging.FromContext(ctx).Debug("ignoring change", logging.FieldURI, change.URI, logging.FieldError, err)
			continue
		}
		paths = append(paths, path)
	}

	h.goBackground(func(ctx context.Context) {
		h.recheck(ctx, paths)
		h.scheduleAll()
	})
}

// recheck lints an empty file next to each failed configuration. A configuration
// that loads again is dropped from the config-error store.
func (h *Handler) recheck(ctx context.Context, paths []string) {
	for _, path := range paths {
		engine, ok := h.state.Dedup.ConfigErrorEngine(path)
		if !ok {
			continue
		}

		logger := logging.FromContext(ctx).With(logging.FieldConfig, path)
		if _, err := engine.Lint(ctx, "", filepath.Join(filepath.Dir(path), sentinelFile)); err != nil {
			logger.Debug("configuration still fails to load", logging.FieldError, err)
			continue
		}
		h.state.Dedup.ClearConfigError(path)
		logger.Info("configuration loads again")
	}
}
