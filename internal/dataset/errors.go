// Package dataset reads job codings from CSV and writes similarity rows.
package dataset

import "fmt"

// Error represents a failure reading a dataset, with the 1-based line it
// occurred on when known.
type Error struct {
	Line    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
