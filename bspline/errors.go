// SPDX-License-Identifier: MIT

package bspline

import "errors"

var (
	// ErrEmptyInput is returned when no abscissae are supplied.
	ErrEmptyInput = errors.New("bspline: empty abscissae")

	// ErrInvalidSegments is returned when the segment count is not positive.
	ErrInvalidSegments = errors.New("bspline: segment count must be > 0")

	// ErrInvalidDegree is returned for a negative degree.
	ErrInvalidDegree = errors.New("bspline: degree must be >= 0")

	// ErrDegenerateDomain is returned when the knot spacing is not a positive finite number.
	ErrDegenerateDomain = errors.New("bspline: degenerate domain")
)
