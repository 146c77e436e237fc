// SPDX-License-Identifier: MIT

package method

import "errors"

var (
	// ErrInvalidMethod is wrapped by every Validate failure.
	ErrInvalidMethod = errors.New("method: invalid method")

	// ErrUnknownRole is returned when a detector role string is not recognised.
	ErrUnknownRole = errors.New("method: unknown detector role")
)
