package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/eslintls/internal/configloader"
	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/config"
)

// loadedConfig is the resolved configuration of a command.
type loadedConfig struct {
	*config.Config
	workDir string
}

// loadConfig merges the configuration sources with cliCfg on top and logs the
// loading warnings on logger.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config, logger *log.Logger) (*loadedConfig, error) {
	ctx := commandContext(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return &loadedConfig{Config: loadResult.Config, workDir: workDir}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
