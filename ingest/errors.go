// SPDX-License-Identifier: MIT

package ingest

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is wrapped by every *MalformedInputError.
var ErrMalformedInput = errors.New("ingest: malformed input")

// MalformedInputError locates a bad field. Line is 1-based; Column is the
// 0-based field index, or -1 when the whole line is at fault.
type MalformedInputError struct {
	Line   int
	Column int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("ingest: line %d: %s", e.Line, e.Reason)
	}

	return fmt.Sprintf("ingest: line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// Malformed builds a *MalformedInputError; downstream packages use it for
// rows that parse but do not fit the method (e.g., a missing detector column).
func Malformed(line, column int, format string, args ...interface{}) *MalformedInputError {
	return &MalformedInputError{Line: line, Column: column, Reason: fmt.Sprintf(format, args...)}
}
