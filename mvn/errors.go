// SPDX-License-Identifier: MIT

package mvn

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/isoreduce/matrix"
)

var (
	// ErrInvalidCases is returned when the requested number of draws is not positive.
	ErrInvalidCases = errors.New("mvn: case count must be > 0")

	// ErrMeanLength is returned when len(mu) differs from the covariance order.
	ErrMeanLength = errors.New("mvn: mean length does not match covariance")
)

// SingularCovarianceError reports a covariance matrix that cannot be factored.
// It unwraps to the factorization cause (matrix.ErrNotPositiveDefinite for a
// non-PD input, matrix.ErrAsymmetry for a non-symmetric one).
type SingularCovarianceError struct {
	// Order is the dimension n of the n×n covariance.
	Order int
	// MinEigenvalue is the smallest eigenvalue of Σ when it could be computed.
	MinEigenvalue float64
	// HasEigenvalue is false when the eigen diagnostic itself failed.
	HasEigenvalue bool
	// Err is the underlying factorization error.
	Err error
}

func (e *SingularCovarianceError) Error() string {
	if e.HasEigenvalue {
		return fmt.Sprintf("mvn: covariance %dx%d not factorable (min eigenvalue %.6g): %v",
			e.Order, e.Order, e.MinEigenvalue, e.Err)
	}

	return fmt.Sprintf("mvn: covariance %dx%d not factorable: %v", e.Order, e.Order, e.Err)
}

func (e *SingularCovarianceError) Unwrap() error { return e.Err }

// newSingularCovarianceError attaches the eigenvalue diagnostic to cause.
func newSingularCovarianceError(sigma matrix.Matrix, cause error) *SingularCovarianceError {
	e := &SingularCovarianceError{Order: sigma.Rows(), Err: cause}
	eigs, _, err := matrix.Eigen(sigma, matrix.DefaultEpsilon, matrix.DefaultEigenMaxIter)
	if err != nil || len(eigs) == 0 {
		return e
	}
	lo := eigs[0]
	for _, v := range eigs[1:] {
		if v < lo {
			lo = v
		}
	}
	e.MinEigenvalue, e.HasEigenvalue = lo, true

	return e
}
