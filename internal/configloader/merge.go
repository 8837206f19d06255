package configloader

import "github.com/yaklabco/eslintls/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Enable != nil {
		enabled := *override.Enable
		result.Enable = &enabled
	}
	if override.Run != "" {
		result.Run = override.Run
	}
	if override.NodePath != "" {
		result.NodePath = override.NodePath
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.ShutdownDelay != 0 {
		result.ShutdownDelay = override.ShutdownDelay
	}
	if override.MetricsAddr != "" {
		result.MetricsAddr = override.MetricsAddr
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// Booleans where false is the zero value can only be switched on by an override.
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Validate != nil {
		result.Validate = append([]string(nil), override.Validate...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}
	if override.Options.ConfigFile != "" {
		result.Options.ConfigFile = override.Options.ConfigFile
	}
	if override.Options.RulePaths != nil {
		result.Options.RulePaths = append([]string(nil), override.Options.RulePaths...)
	}
	if override.Options.ExtraArgs != nil {
		result.Options.ExtraArgs = append([]string(nil), override.Options.ExtraArgs...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
