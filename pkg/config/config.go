// Package config defines core configuration types for eslintls.
// These types are pure data structures with no dependency on how they are loaded.
package config

import (
	"runtime"
	"slices"
	"time"
)

// RunMode decides which document events trigger validation.
type RunMode string

const (
	// RunOnType validates on every change.
	RunOnType RunMode = "onType"
	// RunOnSave validates only when a document is saved.
	RunOnSave RunMode = "onSave"
)

// IsValid returns true if the run mode is known.
func (r RunMode) IsValid() bool {
	return r == RunOnType || r == RunOnSave
}

// OutputFormat specifies the output format of the check and fix commands.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Options are passed through to every ESLint invocation.
type Options struct {
	// ConfigFile is an explicit ESLint configuration file (--config).
	ConfigFile string `json:"configFile,omitempty" yaml:"config_file"`

	// RulePaths are additional rule directories (--rulesdir).
	RulePaths []string `json:"rulePaths,omitempty" yaml:"rule_paths"`

	// ExtraArgs are appended verbatim to the ESLint command line.
	ExtraArgs []string `json:"extraArgs,omitempty" yaml:"extra_args"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for eslintls.
type Config struct {
	// LogLevel is the level of the stderr logger.
	LogLevel string `yaml:"log_level"`

	// Enable turns validation on or off. Nil means enabled.
	Enable *bool `yaml:"enable"`

	// Run decides when documents are validated.
	Run RunMode `yaml:"run"`

	// Validate lists the language ids that are validated.
	Validate []string `yaml:"validate"`

	// NodePath is an extra node_modules directory searched for ESLint.
	NodePath string `yaml:"node_path"`

	// Jobs bounds concurrent validations. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// ShutdownDelay is how long the server waits after announcing an exit.
	ShutdownDelay time.Duration `yaml:"shutdown_delay"`

	// MetricsAddr serves Prometheus metrics when set (e.g. "127.0.0.1:9464").
	MetricsAddr string `yaml:"metrics_addr"`

	// Options are passed to ESLint.
	Options Options `yaml:"options"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// Ignore lists glob patterns skipped by the check and fix commands.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// Default values.
const (
	DefaultShutdownDelay = time.Second
	DefaultLogLevel      = "info"
)

// DefaultLanguages are validated when no validate list is configured.
func DefaultLanguages() []string {
	return []string{"javascript", "javascriptreact"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		LogLevel:      DefaultLogLevel,
		Enable:        &enabled,
		Run:           RunOnType,
		Validate:      DefaultLanguages(),
		ShutdownDelay: DefaultShutdownDelay,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Enabled reports whether validation is turned on.
func (c *Config) Enabled() bool {
	return c.Enable == nil || *c.Enable
}

// ShouldValidate reports whether documents of languageID are validated.
func (c *Config) ShouldValidate(languageID string) bool {
	if !c.Enabled() {
		return false
	}
	languages := c.Validate
	if languages == nil {
		languages = DefaultLanguages()
	}
	return slices.Contains(languages, languageID)
}

// Workers returns the effective number of concurrent validations.
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// EngineArgs returns the ESLint command line arguments derived from Options.
func (c *Config) EngineArgs() []string {
	var args []string
	if c.Options.ConfigFile != "" {
		args = append(args, "--config", c.Options.ConfigFile)
	}
	for _, dir := range c.Options.RulePaths {
		args = append(args, "--rulesdir", dir)
	}
	return append(args, c.Options.ExtraArgs...)
}
