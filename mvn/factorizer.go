// SPDX-License-Identifier: MIT

package mvn

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/isoreduce/matrix"
)

// Factorizer produces an n×n factor T with Σ = TᵀT.
// Implementations must not alter Σ and must fail rather than perturb it.
type Factorizer interface {
	Factor(sigma matrix.Matrix) (*matrix.Dense, error)
}

// Cholesky is the default Factorizer: T = Lᵀ where Σ = L·Lᵀ.
type Cholesky struct {
	// Opts are forwarded to matrix.Cholesky (e.g., WithEpsilon for the symmetry check).
	Opts []matrix.Option
}

var _ Factorizer = Cholesky{}

// Factor implements Factorizer.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (structural).
//   - *SingularCovarianceError for asymmetric or non-PD Σ.
func (c Cholesky) Factor(sigma matrix.Matrix) (*matrix.Dense, error) {
	L, err := matrix.Cholesky(sigma, c.Opts...)
	if err != nil {
		if errors.Is(err, matrix.ErrNotPositiveDefinite) || errors.Is(err, matrix.ErrAsymmetry) {
			return nil, newSingularCovarianceError(sigma, err)
		}

		return nil, fmt.Errorf("mvn: factor: %w", err)
	}
	T, err := matrix.Transpose(L)
	if err != nil {
		return nil, fmt.Errorf("mvn: factor: %w", err)
	}

	return matrix.ToDense(T)
}
