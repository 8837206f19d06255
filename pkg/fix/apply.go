package fix

import "bytes"

// ApplyEdits applies edits prepared by PrepareEdits to content and returns the
// result.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplyFixes applies an overlap-free fix set to text.
func ApplyFixes(text string, fixes []AutoFix) (string, error) {
	edits, err := PrepareEdits(ToByteEdits(text, fixes), len(text))
	if err != nil {
		return "", err
	}
	return string(ApplyEdits([]byte(text), edits)), nil
}
