package status

import (
	"regexp"
	"strings"

	"github.com/yaklabco/eslintls/pkg/eslint"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// cliPrefix is prepended by the ESLint CLI to some configuration errors.
const cliPrefix = "CLI: "

// Sanitize renders err for display. Line breaks become single spaces and a leading
// "CLI: " is dropped. An error without a message is described by path.
func Sanitize(err error, path string) string {
	msg, ok := eslint.MessageOf(err)
	if !ok {
		return "An unknown error occurred while validating file: " + path
	}
	msg = lineBreak.ReplaceAllString(msg, " ")
	return strings.TrimPrefix(msg, cliPrefix)
}
