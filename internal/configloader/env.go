package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/eslintls/pkg/config"
)

// envVarPrefix is the prefix for all eslintls environment variables.
const envVarPrefix = "ESLINTLS_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeDuration
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL":          {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"ENABLE":             {field: "enable", typ: envTypeBool, description: "Enable validation: true or false"},
	"RUN":                {field: "run", typ: envTypeString, description: "When to validate: onType or onSave"},
	"VALIDATE":           {field: "validate", typ: envTypeSlice, description: "Comma-separated language ids to validate"},
	"NODE_PATH":          {field: "node_path", typ: envTypeString, description: "Extra node_modules directory searched for eslint"},
	"JOBS":               {field: "jobs", typ: envTypeInt, description: "Number of concurrent validations (0 = auto)"},
	"SHUTDOWN_DELAY":     {field: "shutdown_delay", typ: envTypeDuration, description: "Delay between exit notification and exit"},
	"METRICS_ADDR":       {field: "metrics_addr", typ: envTypeString, description: "Address to serve Prometheus metrics on"},
	"CONFIG_FILE":        {field: "options.config_file", typ: envTypeString, description: "ESLint configuration file passed as --config"},
	"RULE_PATHS":         {field: "options.rule_paths", typ: envTypeSlice, description: "Comma-separated ESLint rule directories"},
	"BACKUPS_ENABLED":    {field: "backups.enabled", typ: envTypeBool, description: "Enable backups when fixing: true or false"},
	"BACKUPS_MODE":       {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"NO_BACKUPS":         {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
	"FORMAT":             {field: "format", typ: envTypeString, description: "Output format: text, table, json, diff, or summary"},
	"DRY_RUN":            {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"IGNORE":             {field: "ignore", typ: envTypeSlice, description: "Comma-separated glob patterns to skip"},
	"OPTIONS_EXTRA_ARGS": {field: "options.extra_args", typ: envTypeSlice, description: "Comma-separated extra ESLint arguments"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ESLINTLS_ (e.g., ESLINTLS_RUN).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.ShutdownDelay = d
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "run":
		cfg.Run = config.RunMode(value)
	case "node_path":
		cfg.NodePath = value
	case "metrics_addr":
		cfg.MetricsAddr = value
	case "options.config_file":
		cfg.Options.ConfigFile = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "enable":
		cfg.Enable = &value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "validate":
		cfg.Validate = value
	case "options.rule_paths":
		cfg.Options.RulePaths = value
	case "options.extra_args":
		cfg.Options.ExtraArgs = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
