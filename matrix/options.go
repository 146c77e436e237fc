// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy and the
// iterative solvers. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves a final Options value.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each field is read by at least one kernel.
//   - Panic only on invalid parameters (programmer error), never on data.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon is the tolerance used by structural checks (symmetry, AllClose-like).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set/Apply.
	DefaultValidateNaNInf = true
)

// Solver policy.
const (
	// DefaultNNLSTolerance is the gradient threshold below which the active-set
	// loop treats every remaining gradient component as non-positive. Zero
	// selects the scale-aware threshold 10·eps·‖A‖₁·max(rows, cols).
	DefaultNNLSTolerance = 0

	// DefaultNNLSZeroTolerance is the magnitude under which a passive entry is
	// considered to have reached the boundary and is demoted. Zero selects the
	// same scale-aware threshold as DefaultNNLSTolerance.
	DefaultNNLSZeroTolerance = 0

	// DefaultNNLSIterationFactor scales rows*cols into the iteration cap.
	DefaultNNLSIterationFactor = 300

	// DefaultEigenMaxIter bounds Jacobi sweeps in diagnostics that call Eigen.
	DefaultEigenMaxIter = 1000
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid  = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicNNLSTolInvalid  = "matrix: WithNNLSTolerance: tol must be finite, non-negative"
	panicNNLSIterInvalid = "matrix: WithNNLSMaxIterations: n must be > 0"
	panicNNLSZeroInvalid = "matrix: WithNNLSZeroTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	// numeric policy
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf

	// NNLS policy
	nnlsTol     float64 // gradient stop threshold
	nnlsZeroTol float64 // boundary demotion threshold
	nnlsMaxIter int     // 0 => DefaultNNLSIterationFactor*rows*cols
}

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Panics with a stable message when eps is negative or non-finite.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation for matrices created
// by option-aware constructors (NewDenseWithOptions).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithNNLSTolerance sets the gradient threshold of the active-set loop.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0 (panic otherwise).
//   - Stage 2: return a setter writing nnlsTol.
//
// Notes:
//   - The default (0) derives the threshold from A: 10·eps·‖A‖₁·max(rows, cols).
//     Raise it for noisy right-hand sides to stop earlier.
func WithNNLSTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicNNLSTolInvalid)
	}

	return func(o *Options) { o.nnlsTol = tol }
}

// WithNNLSZeroTolerance sets the boundary threshold used to demote passive
// entries back to the active set after an interpolation step.
func WithNNLSZeroTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicNNLSZeroInvalid)
	}

	return func(o *Options) { o.nnlsZeroTol = tol }
}

// WithNNLSMaxIterations overrides the iteration cap (default 300*rows*cols).
func WithNNLSMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicNNLSIterInvalid)
	}

	return func(o *Options) { o.nnlsMaxIter = n }
}

// NewMatrixOptions resolves a set of Option values into an Options snapshot.
// Useful for callers that want to inspect the effective configuration.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon returns the effective structural tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether finite-value validation is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// NNLSTolerance returns the effective NNLS gradient threshold.
func (o Options) NNLSTolerance() float64 { return o.nnlsTol }

// nnlsTolerances resolves the gradient and demotion thresholds for A.
func (o Options) nnlsTolerances(A *Dense) (tol, zeroTol float64) {
	tol, zeroTol = o.nnlsTol, o.nnlsZeroTol
	if tol > 0 && zeroTol > 0 {
		return tol, zeroTol
	}
	auto := nnlsScaleTolerance(A)
	if tol == 0 {
		tol = auto
	}
	if zeroTol == 0 {
		zeroTol = auto
	}

	return tol, zeroTol
}

// nnlsScaleTolerance is 10·eps·‖A‖₁·max(rows, cols), ‖A‖₁ the largest
// absolute column sum.
func nnlsScaleTolerance(A *Dense) float64 {
	var norm1 float64
	for j := 0; j < A.c; j++ {
		var s float64
		for i := 0; i < A.r; i++ {
			s += math.Abs(A.data[i*A.c+j])
		}
		norm1 = math.Max(norm1, s)
	}

	return 10 * machineEpsilon * norm1 * float64(max(A.r, A.c))
}

// nnlsCap resolves the iteration cap for an r×c system.
func (o Options) nnlsCap(r, c int) int {
	if o.nnlsMaxIter > 0 {
		return o.nnlsMaxIter
	}

	return DefaultNNLSIterationFactor * r * c
}

// gatherOptions starts from the defaults and applies user setters in order.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		nnlsTol:        DefaultNNLSTolerance,
		nnlsZeroTol:    DefaultNNLSZeroTolerance,
	}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}

// machineEpsilon is the float64 unit roundoff gap, 2^-52.
const machineEpsilon = 0x1p-52

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
