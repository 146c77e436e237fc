// SPDX-License-Identifier: MIT

package mvn

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/isoreduce/matrix"
)

// Option configures a Sampler.
type Option func(*options)

type options struct {
	seed       int64
	rng        *rand.Rand
	factorizer Factorizer
}

// WithSeed fixes the RNG seed (0 selects the package default).
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithRand injects an explicit generator; it takes precedence over WithSeed.
// The Sampler becomes the generator's only user.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithFactorizer swaps the covariance factorization backend.
func WithFactorizer(f Factorizer) Option {
	return func(o *options) { o.factorizer = f }
}

// Sampler holds a factored covariance and a private RNG stream.
// Proposal loops that reuse the same Σ should build one Sampler and call Draw.
type Sampler struct {
	mu  []float64
	t   *matrix.Dense
	rng *rand.Rand
}

// NewSampler factors sigma once and validates mu against it.
//
// Errors:
//   - ErrMeanLength when len(mu) != sigma.Rows().
//   - *SingularCovarianceError (wrapping matrix.ErrNotPositiveDefinite) for non-PD Σ.
//   - matrix sentinels for nil/non-square input.
func NewSampler(mu []float64, sigma matrix.Matrix, opts ...Option) (*Sampler, error) {
	o := options{factorizer: Cholesky{}}
	for _, set := range opts {
		set(&o)
	}
	if err := matrix.ValidateSquareNonNil(sigma); err != nil {
		return nil, fmt.Errorf("mvn: %w", err)
	}
	if len(mu) != sigma.Rows() {
		return nil, fmt.Errorf("mvn: len(mu)=%d, order=%d: %w", len(mu), sigma.Rows(), ErrMeanLength)
	}
	T, err := o.factorizer.Factor(sigma)
	if err != nil {
		return nil, err
	}
	rng := o.rng
	if rng == nil {
		rng = rngFromSeed(o.seed)
	}

	return &Sampler{mu: append([]float64(nil), mu...), t: T, rng: rng}, nil
}

// Dim returns the sample dimension n.
func (s *Sampler) Dim() int { return len(s.mu) }

// Factor returns a copy of the upper factor T (Σ = TᵀT).
func (s *Sampler) Factor() *matrix.Dense {
	c, _ := matrix.ToDense(s.t.Clone())

	return c
}

// Draw returns a cases×n matrix whose rows are independent draws.
// Errors: ErrInvalidCases.
func (s *Sampler) Draw(cases int) (*matrix.Dense, error) {
	if cases <= 0 {
		return nil, fmt.Errorf("mvn: cases=%d: %w", cases, ErrInvalidCases)
	}
	n := len(s.mu)
	z := make([]float64, cases*n)
	for i := range z {
		z[i] = s.rng.NormFloat64()
	}
	Z, err := matrix.NewDenseFrom(cases, n, z)
	if err != nil {
		return nil, fmt.Errorf("mvn: draw: %w", err)
	}
	ZT, err := matrix.Mul(Z, s.t)
	if err != nil {
		return nil, fmt.Errorf("mvn: draw: %w", err)
	}
	neg := make([]float64, n)
	for j, m := range s.mu {
		neg[j] = -m
	}
	X, err := matrix.SubtractColumns(ZT, neg)
	if err != nil {
		return nil, fmt.Errorf("mvn: draw: %w", err)
	}

	return X, nil
}

// Sample draws cases rows from N(mu, sigma): factor Σ = TᵀT, fill Z with
// standard normals, return Z·T + μ.
//
// It is NewSampler followed by one Draw; see both for errors.
func Sample(mu []float64, sigma matrix.Matrix, cases int, opts ...Option) (*matrix.Dense, error) {
	if cases <= 0 {
		return nil, fmt.Errorf("mvn: cases=%d: %w", cases, ErrInvalidCases)
	}
	s, err := NewSampler(mu, sigma, opts...)
	if err != nil {
		return nil, err
	}

	return s.Draw(cases)
}
