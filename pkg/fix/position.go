package fix

import (
	"unicode/utf8"

	"github.com/sourcegraph/go-lsp"
)

// PositionAt converts a UTF-16 offset into an editor position. Offsets past the end
// of text clamp to the end; \n, \r\n and \r all terminate lines.
func PositionAt(text string, offset int) lsp.Position {
	var pos lsp.Position
	units := 0
	for idx := 0; idx < len(text) && units < offset; {
		r, size := utf8.DecodeRuneInString(text[idx:])
		switch {
		case r == '\r' && idx+1 < len(text) && text[idx+1] == '\n':
			// A CRLF pair is one line break spanning two units.
			if units+2 > offset {
				return pos
			}
			units += 2
			idx += 2
			pos.Line++
			pos.Character = 0
			continue
		case r == '\n' || r == '\r':
			pos.Line++
			pos.Character = 0
		default:
			pos.Character += utf16Len(r)
		}
		units += utf16Len(r)
		idx += size
	}
	return pos
}

// ByteOffset converts a UTF-16 offset into a byte index of text.
func ByteOffset(text string, offset int) int {
	units := 0
	for idx, r := range text {
		if units >= offset {
			return idx
		}
		units += utf16Len(r)
	}
	return len(text)
}

// ToTextEdit converts a fix into an editor text edit against text.
func ToTextEdit(text string, autoFix AutoFix) lsp.TextEdit {
	return lsp.TextEdit{
		Range: lsp.Range{
			Start: PositionAt(text, autoFix.Edit.Start),
			End:   PositionAt(text, autoFix.Edit.End),
		},
		NewText: autoFix.Edit.Text,
	}
}

// ToTextEdits converts fixes in order.
func ToTextEdits(text string, fixes []AutoFix) []lsp.TextEdit {
	edits := make([]lsp.TextEdit, 0, len(fixes))
	for _, autoFix := range fixes {
		edits = append(edits, ToTextEdit(text, autoFix))
	}
	return edits
}

// ToByteEdits converts fixes into byte-level edits for ApplyEdits.
func ToByteEdits(text string, fixes []AutoFix) []TextEdit {
	edits := make([]TextEdit, 0, len(fixes))
	for _, autoFix := range fixes {
		edits = append(edits, TextEdit{
			StartOffset: ByteOffset(text, autoFix.Edit.Start),
			EndOffset:   ByteOffset(text, autoFix.Edit.End),
			NewText:     autoFix.Edit.Text,
		})
	}
	return edits
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
