package config

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SettingsSection is the key clients nest eslintls settings under.
const SettingsSection = "eslint"

// Settings are the client-side settings sent with workspace/didChangeConfiguration.
// Unset fields leave the file configuration in place.
type Settings struct {
	Enable   *bool    `json:"enable,omitempty"`
	Run      RunMode  `json:"run,omitempty"`
	Validate []string `json:"validate,omitempty"`
	NodePath string   `json:"nodePath,omitempty"`
	Options  *Options `json:"options,omitempty"`
}

// ParseSettings extracts Settings from a didChangeConfiguration payload. The
// payload is either {"eslint": {...}} or the settings object itself.
func ParseSettings(raw json.RawMessage) (Settings, error) {
	var settings Settings
	if len(raw) == 0 || string(raw) == "null" {
		return settings, nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return settings, fmt.Errorf("decode settings: %w", err)
	}
	if section, ok := sections[SettingsSection]; ok {
		raw = section
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("decode %s settings: %w", SettingsSection, err)
	}
	return settings, nil
}

// Apply returns a copy of c with settings applied on top.
func (c *Config) Apply(settings Settings) *Config {
	result := c.Clone()
	if result == nil {
		result = NewConfig()
	}

	if settings.Enable != nil {
		enabled := *settings.Enable
		result.Enable = &enabled
	}
	if settings.Run != "" {
		result.Run = settings.Run
	}
	if settings.Validate != nil {
		result.Validate = slices.Clone(settings.Validate)
	}
	if settings.NodePath != "" {
		result.NodePath = settings.NodePath
	}
	if settings.Options != nil {
		if settings.Options.ConfigFile != "" {
			result.Options.ConfigFile = settings.Options.ConfigFile
		}
		if settings.Options.RulePaths != nil {
			result.Options.RulePaths = slices.Clone(settings.Options.RulePaths)
		}
		if settings.Options.ExtraArgs != nil {
			result.Options.ExtraArgs = slices.Clone(settings.Options.ExtraArgs)
		}
	}
	return result
}
