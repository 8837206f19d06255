package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/eslintls/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Run != config.RunOnType {
		t.Errorf("expected run %q, got %q", config.RunOnType, cfg.Run)
	}
	if !cfg.Enabled() {
		t.Error("expected validation enabled by default")
	}
	if cfg.ShutdownDelay != config.DefaultShutdownDelay {
		t.Errorf("expected shutdown delay %v, got %v", config.DefaultShutdownDelay, cfg.ShutdownDelay)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(tmpDir, ".eslintls.yml"), `
run: onSave
validate: [javascript, typescript]
options:
  extra_args: [--cache]
`)
	nested := filepath.Join(tmpDir, "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Run != config.RunOnSave {
		t.Errorf("expected run onSave, got %q", result.Config.Run)
	}
	if got := result.Config.Validate; len(got) != 2 || got[1] != "typescript" {
		t.Errorf("unexpected validate list %v", got)
	}
	if got := result.Config.Options.ExtraArgs; len(got) != 1 || got[0] != "--cache" {
		t.Errorf("unexpected extra args %v", got)
	}
	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != ".eslintls.yml" {
		t.Errorf("unexpected LoadedFrom %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigSkipsProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".eslintls.yml"), "jobs: 2\n")
	explicit := filepath.Join(tmpDir, "ci", "eslintls.yaml")
	writeFile(t, explicit, "shutdown_delay: 3s\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.ShutdownDelay != 3*time.Second {
		t.Errorf("expected explicit shutdown delay, got %v", result.Config.ShutdownDelay)
	}
	if result.Config.Jobs != 0 {
		t.Errorf("project config must be skipped with an explicit path, got jobs=%d", result.Config.Jobs)
	}
	if result.Paths.Explicit != explicit {
		t.Errorf("expected explicit path recorded, got %q", result.Paths.Explicit)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".eslintls.yml"), "jobs: 2\nrun: onSave\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{Jobs: 8, DryRun: true}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if result.Config.Run != config.RunOnSave {
		t.Errorf("expected run from file to survive, got %q", result.Config.Run)
	}
	if !result.Config.DryRun {
		t.Error("expected dry run true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "run mode", content: "run: always\n", field: "run"},
		{name: "log level", content: "log_level: verbose\n", field: "log_level"},
		{name: "jobs", content: "jobs: -1\n", field: "jobs"},
		{name: "backup mode", content: "backups:\n  mode: cloud\n", field: "backups.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, ".eslintls.yml")
			writeFile(t, configPath, tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, valErr.Field)
			}
			if valErr.FilePath != configPath {
				t.Errorf("expected file path %q in error, got %q", configPath, valErr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".eslintls.yml"), "validate: [javascript\n")

	if _, err := Load(context.Background(), isolatedOptions(tmpDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	if _, err := Load(ctx, isolatedOptions(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoad_Env(t *testing.T) {
	// Not parallel because it modifies the environment.
	t.Setenv("ESLINTLS_RUN", "onSave")
	t.Setenv("ESLINTLS_VALIDATE", "javascript, vue")
	t.Setenv("ESLINTLS_ENABLE", "false")
	t.Setenv("ESLINTLS_SHUTDOWN_DELAY", "10ms")
	t.Setenv("ESLINTLS_IGNORE", "dist/**,vendor")
	t.Setenv("ESLINTLS_FORMAT", "table")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Run != config.RunOnSave {
		t.Errorf("expected run onSave, got %q", cfg.Run)
	}
	if len(cfg.Validate) != 2 || cfg.Validate[1] != "vue" {
		t.Errorf("unexpected validate list %v", cfg.Validate)
	}
	if cfg.Enabled() {
		t.Error("expected ESLINTLS_ENABLE=false to disable validation")
	}
	if cfg.ShutdownDelay != 10*time.Millisecond {
		t.Errorf("unexpected shutdown delay %v", cfg.ShutdownDelay)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "dist/**" {
		t.Errorf("unexpected ignore list %v", cfg.Ignore)
	}
	if cfg.Format != config.FormatTable {
		t.Errorf("expected format table, got %q", cfg.Format)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("ESLINTLS_JOBS", "many")

	if err := LoadFromEnv(config.NewConfig()); err == nil {
		t.Fatal("expected error for non-integer jobs")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	disabled := false
	got := MergeAll(
		config.NewConfig(),
		&config.Config{NodePath: "/a", Validate: []string{"vue"}},
		&config.Config{Enable: &disabled, Options: config.Options{RulePaths: []string{"r"}}, Ignore: []string{"dist"}},
	)

	if got.NodePath != "/a" || got.Validate[0] != "vue" || got.Enabled() || got.Options.RulePaths[0] != "r" {
		t.Errorf("unexpected merge result %+v", got)
	}
	if got.Run != config.RunOnType {
		t.Errorf("unset override fields must keep base values, got run %q", got.Run)
	}
	if len(got.Ignore) != 1 || got.Ignore[0] != "dist" {
		t.Errorf("expected ignore to be merged, got %v", got.Ignore)
	}
}

func TestIsESLintConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/w/.eslintrc":         true,
		"/w/.eslintrc.json":    true,
		"/w/eslint.config.mjs": true,
		"/w/package.json":      true,
		"/w/.eslintignore":     true,
		"/w/src/index.js":      false,
		"/w/tsconfig.json":     false,
		"/w/eslint-rules/a.js": false,
	}

	for path, want := range tests {
		if got := IsESLintConfig(path); got != want {
			t.Errorf("IsESLintConfig(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".eslintls.yml")
	cfg := config.NewConfig()
	cfg.NodePath = "/opt/node_modules"

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	loaded, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}
	if loaded.NodePath != "/opt/node_modules" {
		t.Errorf("expected node path to round trip, got %q", loaded.NodePath)
	}
}
