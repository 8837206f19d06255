// Package runner lints and fixes JavaScript files on disk, many at a time.
package runner

import "github.com/yaklabco/eslintls/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means the process directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with dot, that are discovered
	// inside directories. Defaults to DefaultExtensions.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when set.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Fix applies ESLint's fixes.
	Fix bool

	// Jobs bounds concurrent files. 0 means Config.Workers().
	Jobs int

	// Config is the resolved configuration of the run.
	Config *config.Config
}

// DefaultExtensions returns the extensions of the JavaScript family.
func DefaultExtensions() []string {
	return []string{".js", ".cjs", ".mjs", ".jsx", ".ts", ".cts", ".mts", ".tsx", ".vue"}
}

// skippedDirs are never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = map[string]struct{}{
	"node_modules":     {},
	"bower_components": {},
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) jobs() int {
	switch {
	case o.Jobs > 0:
		return o.Jobs
	case o.Config != nil:
		return o.Config.Workers()
	default:
		return 1
	}
}
