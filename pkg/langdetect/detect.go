// Package langdetect determines the editor language id of a document when the
// client does not send one. It uses go-enry for everything the extension alone
// cannot answer.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Editor language ids.
const (
	JavaScript      = "javascript"
	JavaScriptReact = "javascriptreact"
	TypeScript      = "typescript"
	TypeScriptReact = "typescriptreact"
	Vue             = "vue"
	HTML            = "html"
	JSON            = "json"
	Markdown        = "markdown"
	PlainText       = "plaintext"
)

// extensionIDs maps file extensions whose language id differs from what linguist
// reports (linguist folds JSX into JavaScript) or that linguist finds ambiguous.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extensionIDs = map[string]string{
	".js":   JavaScript,
	".cjs":  JavaScript,
	".mjs":  JavaScript,
	".jsx":  JavaScriptReact,
	".ts":   TypeScript,
	".cts":  TypeScript,
	".mts":  TypeScript,
	".tsx":  TypeScriptReact,
	".vue":  Vue,
	".html": HTML,
	".htm":  HTML,
}

// enryIDs maps go-enry language names to editor language ids.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryIDs = map[string]string{
	"JavaScript": JavaScript,
	"TypeScript": TypeScript,
	"TSX":        TypeScriptReact,
	"Vue":        Vue,
	"HTML":       HTML,
	"JSON":       JSON,
	"Markdown":   Markdown,
}

// classifierCandidates are the languages the content classifier chooses between.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{"JavaScript", "TypeScript", "JSON", "HTML", "Markdown"}

// LanguageID returns the editor language id for a document at path with content.
// Returns "plaintext" when nothing matches.
func LanguageID(path string, content []byte) string {
	// Strategy 1: well-known extensions.
	if id, ok := extensionIDs[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}

	// Strategy 2: linguist's extension table.
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		if id, ok := enryIDs[lang]; ok {
			return id
		}
	}

	if len(content) == 0 {
		return PlainText
	}

	// Strategy 3: shebang (#!/usr/bin/env node).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if id, ok := enryIDs[lang]; ok {
			return id
		}
	}

	// Strategy 4: patterns that are highly indicative of JavaScript.
	if looksLikeJavaScript(string(content)) {
		return JavaScript
	}

	// Strategy 5: classifier, only when confident.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
		if id, ok := enryIDs[lang]; ok {
			return id
		}
	}

	return PlainText
}

// looksLikeJavaScript checks for JavaScript patterns.
func looksLikeJavaScript(content string) bool {
	return strings.Contains(content, "=>") ||
		strings.Contains(content, "require(") ||
		strings.Contains(content, "module.exports") ||
		strings.Contains(content, "console.log") ||
		(strings.Contains(content, "function ") && strings.Contains(content, "{"))
}
