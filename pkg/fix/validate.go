package fix

import (
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that edits are in bounds for contentLen and do not overlap in
// the order given. Returns the first problem found.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	cursor := 0
	for _, edit := range edits {
		if edit.StartOffset < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.EndOffset < edit.StartOffset {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.EndOffset > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
		if edit.StartOffset < cursor {
			return &ValidationError{Edit: edit, Message: "overlaps the previous edit"}
		}
		cursor = edit.EndOffset
	}
	return nil
}

// PrepareEdits validates edits and returns them in application order.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return compareEdits(
			AutoFixEdit{Start: a.StartOffset, End: a.EndOffset},
			AutoFixEdit{Start: b.StartOffset, End: b.EndOffset},
		)
	})
	if err := ValidateEdits(sorted, contentLen); err != nil {
		return nil, err
	}
	return sorted, nil
}
