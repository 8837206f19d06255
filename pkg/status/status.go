// Package status classifies ESLint failures into user-facing validation states and
// keeps the notifications they raise from repeating.
package status

import "fmt"

// Status is the outcome of a validation pass. Larger values are worse.
type Status int

// Validation states, encoded as sent in eslint/status notifications.
const (
	OK    Status = 1
	Warn  Status = 2
	Error Status = 3
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Worst returns the more severe of a and b.
func Worst(a, b Status) Status {
	return max(a, b)
}
