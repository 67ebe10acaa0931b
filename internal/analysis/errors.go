// Package analysis drives pairwise job similarity over a dataset.
package analysis

import "fmt"

// Error represents an error that occurs during an analysis run
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
