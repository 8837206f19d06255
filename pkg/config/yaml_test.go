package config_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/eslintls/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Options.RulePaths = []string{"rules"}
		original.Options.ExtraArgs = []string{"--cache"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Validate[0] = "typescript"
		clone.Options.RulePaths[0] = "changed"
		*clone.Enable = false

		assert.Equal(t, "javascript", original.Validate[0])
		assert.Equal(t, "rules", original.Options.RulePaths[0])
		assert.True(t, original.Enabled())
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte(`
log_level: debug
enable: false
run: onSave
validate: [javascript, typescript]
node_path: /opt/node_modules
jobs: 4
shutdown_delay: 250ms
options:
  config_file: .eslintrc.ci.json
  rule_paths: [tools/rules]
`)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, config.RunOnSave, cfg.Run)
	assert.Equal(t, []string{"javascript", "typescript"}, cfg.Validate)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownDelay)
	assert.Equal(t, ".eslintrc.ci.json", cfg.Options.ConfigFile)

	out, err := cfg.ToYAMLWithHeader("# eslintls")
	require.NoError(t, err)
	assert.Contains(t, string(out), "# eslintls\n\n")

	again, err := config.FromYAML(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Options, again.Options)
	assert.Equal(t, cfg.ShutdownDelay, again.ShutdownDelay)
}

func TestFromYAML_EmptyListsAreNil(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("validate: []\nignore: []\noptions:\n  extra_args: []\n  rule_paths: []\n"))
	require.NoError(t, err)

	assert.NotNil(t, cfg.Validate)
	assert.False(t, cfg.ShouldValidate("javascript"))
	assert.Nil(t, cfg.Ignore)
	assert.Nil(t, cfg.Options.ExtraArgs)
	assert.Nil(t, cfg.Options.RulePaths)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("jobs: [1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestShouldValidate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.ShouldValidate("javascript"))
	assert.True(t, cfg.ShouldValidate("javascriptreact"))
	assert.False(t, cfg.ShouldValidate("typescript"))

	cfg.Validate = nil
	assert.True(t, cfg.ShouldValidate("javascript"), "nil list falls back to defaults")

	disabled := false
	cfg.Enable = &disabled
	assert.False(t, cfg.ShouldValidate("javascript"))
}

func TestEngineArgs(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Empty(t, cfg.EngineArgs())

	cfg.Options = config.Options{
		ConfigFile: "ci.json",
		RulePaths:  []string{"a", "b"},
		ExtraArgs:  []string{"--no-eslintrc"},
	}
	assert.Equal(t,
		[]string{"--config", "ci.json", "--rulesdir", "a", "--rulesdir", "b", "--no-eslintrc"},
		cfg.EngineArgs())
}

func TestParseSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    config.Settings
		wantErr bool
	}{
		{name: "null", raw: "null"},
		{
			name: "nested section",
			raw:  `{"eslint": {"run": "onSave", "validate": ["typescript"]}}`,
			want: config.Settings{Run: config.RunOnSave, Validate: []string{"typescript"}},
		},
		{
			name: "bare settings",
			raw:  `{"nodePath": "/n", "options": {"configFile": "x.json"}}`,
			want: config.Settings{NodePath: "/n", Options: &config.Options{ConfigFile: "x.json"}},
		},
		{name: "not an object", raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseSettings(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplySettings(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Options.ExtraArgs = []string{"--cache"}

	disabled := false
	got := base.Apply(config.Settings{
		Enable:  &disabled,
		Run:     config.RunOnSave,
		Options: &config.Options{ConfigFile: "ci.json"},
	})

	assert.False(t, got.Enabled())
	assert.Equal(t, config.RunOnSave, got.Run)
	assert.Equal(t, "ci.json", got.Options.ConfigFile)
	assert.Equal(t, []string{"--cache"}, got.Options.ExtraArgs)
	assert.Equal(t, config.DefaultLanguages(), got.Validate)

	assert.True(t, base.Enabled(), "base is not modified")
	assert.Equal(t, config.RunOnType, base.Run)
}
