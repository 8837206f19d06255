package eslint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stderr       string
		wantMessage  string
		wantTemplate string
	}{
		{
			name:        "plain message",
			stderr:      "Cannot read config file: /w/.eslintrc\nError: Unexpected token\n",
			wantMessage: "Cannot read config file: /w/.eslintrc\nError: Unexpected token",
		},
		{
			name:         "crash banner with version",
			stderr:       "Oops! Something went wrong! :(\n\nESLint: 8.57.0\n\nESLint couldn't find a configuration file.",
			wantMessage:  "ESLint couldn't find a configuration file.",
			wantTemplate: NoConfigTemplate,
		},
		{
			name:         "legacy no config sentinel",
			stderr:       "No ESLint configuration found.",
			wantMessage:  "No ESLint configuration found.",
			wantTemplate: NoConfigTemplate,
		},
		{
			name:        "windows line endings",
			stderr:      "a\r\nb",
			wantMessage: "a\nb",
		},
		{
			name:        "empty",
			stderr:      "",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseFailure(tt.stderr, assert.AnError)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantTemplate, got.MessageTemplate)
			assert.ErrorIs(t, got, assert.AnError)
		})
	}
}
