// Package fix records candidate fixes reported by ESLint and resolves them into
// non-conflicting edit sets.
package fix

import "fmt"

// AutoFixEdit replaces the characters [Start, End) of a document with Text.
// Offsets count UTF-16 code units, which is how ESLint reports them.
type AutoFixEdit struct {
	// Start is the offset where the edit begins (inclusive).
	Start int

	// End is the offset where the edit ends (exclusive).
	End int

	// Text is the replacement text.
	Text string
}

// AutoFix is a candidate fix recorded for one diagnostic.
type AutoFix struct {
	// Label is the title shown for the single-fix action.
	Label string

	// DocumentVersion is the document version the fix was computed against.
	DocumentVersion int

	// RuleID is the rule that proposed the fix.
	RuleID string

	// Edit is the replacement to apply.
	Edit AutoFixEdit
}

// LabelFor returns the single-fix action title for a rule.
func LabelFor(ruleID string) string {
	return fmt.Sprintf("Fix this %s problem", ruleID)
}

// TextEdit is a byte-level replacement in file content.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int
	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int
	// NewText is the replacement text.
	NewText string
}
