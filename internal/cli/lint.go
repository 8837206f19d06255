package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/config"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/reporter"
	"github.com/yaklabco/eslintls/pkg/runner"
)

type lintFlags struct {
	format         string
	ignore         []string
	include        []string
	extensions     []string
	languages      []string
	followSymlinks bool
	strict         bool
	noContext      bool
	compact        bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Lint JavaScript files with ESLint",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, false, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

func newFixCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply ESLint auto-fixes to JavaScript files",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, true, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without writing files")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")

	return cmd
}

const checkLongDescription = `Lint files with the ESLint installation of their project.

By default, checks the JavaScript files of the current directory and its
subdirectories. node_modules and hidden directories are skipped. Specify
paths to check specific files or directories.

Examples:
  eslintls check                      # Check current directory
  eslintls check src/                 # Check src directory
  eslintls check --lang typescript    # Check TypeScript files too
  eslintls check --format json        # Output as JSON for CI
  eslintls check --strict             # Treat warnings as errors`

const fixLongDescription = `Apply ESLint's auto-fixes, repeating until no fix is left.

Each pass keeps only the fixes that do not overlap, the same selection the
language server offers as "Fix all auto-fixable problems". Files are written
atomically and a sidecar backup is kept unless backups are disabled.

Examples:
  eslintls fix                        # Fix current directory
  eslintls fix --dry-run              # Show the fixes as a diff
  eslintls fix --no-backups src/      # Fix without backups`

func runLint(cmd *cobra.Command, args []string, fixMode bool, cliCfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags.
	switch {
	case cmd.Flags().Changed("format"):
		cliCfg.Format = config.OutputFormat(flags.format)
	case cliCfg.DryRun:
		cliCfg.Format = config.FormatDiff
	}
	cliCfg.Ignore = flags.ignore
	if len(flags.languages) > 0 {
		cliCfg.Validate = flags.languages
	}

	cfg, err := loadConfig(cmd, cliCfg, logger)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	logger.Debug("configuration loaded",
		"fix", fixMode,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	loader := eslint.NewNodeLoader(cfg.workDir, cfg.NodePath, cfg.EngineArgs())
	lintRunner := runner.New(runner.NewPipeline(loader))

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     cfg.workDir,
		Extensions:     normalizeExtensions(flags.extensions),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Fix:            fixMode,
		Jobs:           cfg.Jobs,
		Config:         cfg.Config,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	ctx := commandContext(cmd)
	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  cfg.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// normalizeExtensions lowercases extensions and adds the leading dot. Nil
// keeps the default extensions.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process paths matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions discovered in directories")
	cmd.Flags().StringSliceVar(&flags.languages, "lang", nil,
		"language ids to validate (default javascript, javascriptreact)")
	cmd.Flags().StringVar(&cfg.NodePath, "node-path", "", "extra node_modules directory searched for eslint")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
