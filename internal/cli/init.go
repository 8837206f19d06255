package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/eslintls/internal/configloader"
	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/config"
)

// defaultConfigName is the project configuration file created by init.
const defaultConfigName = ".eslintls.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	output    string
	run       string
	languages []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new eslintls configuration file",
		Long: `Create a new .eslintls.yml configuration file in the current directory
with the default settings. The file can be customized to change when documents
are validated, which languages are validated and how ESLint is invoked.

Examples:
  eslintls init                          Create .eslintls.yml
  eslintls init --run onSave             Validate on save only
  eslintls init --lang javascript,vue    Validate JavaScript and Vue files
  eslintls init --output custom.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .eslintls.yml)")
	cmd.Flags().StringVar(&flags.run, "run", string(config.RunOnType), "When to validate: onType or onSave")
	cmd.Flags().StringSliceVar(&flags.languages, "lang", nil, "Language ids to validate")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), config.DefaultLogLevel)

	cfg := config.NewConfig()
	cfg.Run = config.RunMode(flags.run)
	if len(flags.languages) > 0 {
		cfg.Validate = flags.languages
	}
	if validation := configloader.Validate(cfg); !validation.Valid() {
		return fmt.Errorf("%w: %w", ErrUsage, &validation.Errors[0])
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := configloader.WriteConfig(cfg, absPath); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'eslintls check' to lint the project with it")

	return nil
}
