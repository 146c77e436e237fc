// SPDX-License-Identifier: MIT

package reduce

import "errors"

var (
	// ErrNilMethod is returned when Reduce is called without a method.
	ErrNilMethod = errors.New("reduce: nil method")

	// ErrEmptyColumnName is returned by WithColumn for a blank name.
	ErrEmptyColumnName = errors.New("reduce: empty column name")

	// ErrDuplicateColumn is returned by WithColumn when the name is taken.
	ErrDuplicateColumn = errors.New("reduce: duplicate column")

	// ErrColumnLength is returned by WithColumn when len(values) != sample count.
	ErrColumnLength = errors.New("reduce: column length mismatch")
)
