// SPDX-License-Identifier: MIT

package interp

import "errors"

var (
	// ErrNoOnPeakRows is returned when a layout is requested for data with no on-peak rows.
	ErrNoOnPeakRows = errors.New("interp: no on-peak rows")

	// ErrInvalidCycleStarts is returned when cycle starts are empty, do not begin
	// at 0, are not strictly increasing, or point past the block.
	ErrInvalidCycleStarts = errors.New("interp: invalid cycle starts")

	// ErrNonMonotonicTime is returned when timestamps decrease inside a block
	// or are not finite.
	ErrNonMonotonicTime = errors.New("interp: timestamps not non-decreasing")
)
