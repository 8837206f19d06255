// Package main is the entry point for the eslintls CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/eslintls/internal/cli"
	"github.com/yaklabco/eslintls/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// An ExitError only carries the exit code of a finished run.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return 0
}
