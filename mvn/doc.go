// SPDX-License-Identifier: MIT

// Package mvn draws correlated multivariate-normal samples.
//
// A covariance Σ (n×n, symmetric positive-definite) is factored once as
// Σ = TᵀT by a Factorizer (Cholesky by default, T = Lᵀ). Each draw of m cases
// fills an m×n matrix Z with independent N(0,1) variates and returns
//
//	X = Z·T + μ   (μ broadcast over rows)
//
// so every row of X is one sample with mean μ and covariance Σ.
//
// A Σ that is not positive-definite is never repaired: Factor returns a
// *SingularCovarianceError that wraps matrix.ErrNotPositiveDefinite and carries
// the smallest eigenvalue as a diagnostic.
//
// Randomness is explicit and seeded (WithSeed); seed 0 maps to a fixed default,
// so identical inputs always produce identical draws. A Sampler is not safe for
// concurrent use; build one per goroutine.
package mvn
