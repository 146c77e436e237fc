// SPDX-License-Identifier: MIT

// Package matrix - non-negative least squares (Lawson–Hanson active set).
//
// Purpose:
//   - Solve min ‖A·x − b‖₂ subject to x ≥ 0.
//   - Expose the solver through the NonNegativeSolver interface so callers
//     (baseline and beam-shape sub-models) can swap implementations.
//
// Termination:
//   - The outer loop is capped at 300·rows·cols iterations (configurable).
//     Hitting the cap is not an error: the result carries Converged == false
//     and must be treated as an approximation.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

const opNNLS = "NNLS"

// NNLSResult is the outcome of one NNLS solve.
type NNLSResult struct {
	// X is the solution vector (len == A.Cols()); every entry is ≥ 0 up to rounding.
	X []float64
	// Iterations counts outer (gradient) iterations.
	Iterations int
	// Converged is false when the iteration cap stopped the loop; X is then a
	// best-effort approximation.
	Converged bool
	// Gradient is w = Aᵀ(b − A·x) at termination.
	Gradient []float64
	// Residual is ‖A·x − b‖₂ at termination.
	Residual float64
}

// NonNegativeSolver abstracts an NNLS backend.
type NonNegativeSolver interface {
	SolveNonNegative(a Matrix, b []float64) (NNLSResult, error)
}

// ActiveSet is the default NonNegativeSolver (classical Lawson–Hanson).
type ActiveSet struct {
	opts []Option
}

var _ NonNegativeSolver = ActiveSet{}

// NewActiveSet returns an ActiveSet solver bound to the given options
// (WithNNLSTolerance, WithNNLSZeroTolerance, WithNNLSMaxIterations).
func NewActiveSet(opts ...Option) ActiveSet {
	return ActiveSet{opts: opts}
}

// SolveNonNegative implements NonNegativeSolver.
func (s ActiveSet) SolveNonNegative(a Matrix, b []float64) (NNLSResult, error) {
	return NNLS(a, b, s.opts...)
}

// NNLS solves min ‖A·x − b‖₂ subject to x ≥ 0.
// MAIN DESCRIPTION:
//   - Passive set P (free entries) starts empty, active set Z holds every column.
//
// Implementation:
//   - Stage 1: w = Aᵀ(b − A·x). Stop when no candidate in Z has w > tol, or
//     when |P| already equals rows.
//   - Stage 2: tentatively move t = argmax w over the candidates into P
//     (first index wins ties) and solve z = argmin ‖A_P·z − b‖.
//     If A_P is rank deficient or z[t] ≤ 0, t is excluded for this outer
//     step and Stage 1 picks the next candidate. Exclusions clear once x moves.
//   - Stage 3: while some z[P] ≤ 0: α = min x_q/(x_q − z_q) over z_q ≤ 0,
//     x += α(z − x), demote the blocking index and every |x_q| < zeroTol
//     back to Z, then re-solve on the smaller P. Otherwise accept x = z.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(b) != rows).
//   - ErrSingular / ErrRankDeficient when a shrunken passive subproblem is degenerate.
//
// Determinism:
//   - Index sets are kept sorted by insertion; no maps, no randomness.
//
// Complexity:
//   - Each subproblem costs O(rows·|P|²); the number of iterations is bounded by the cap.
//
// Notes:
//   - tol and zeroTol default to 10·eps·‖A‖₁·max(rows, cols) (see WithNNLSTolerance).
//   - Converged == false is the only signal that the cap was hit.
func NNLS(a Matrix, b []float64, opts ...Option) (NNLSResult, error) {
	o := gatherOptions(opts...)
	A, err := toDense(a)
	if err != nil {
		return NNLSResult{}, matrixErrorf(opNNLS, err)
	}
	if err = ValidateVecLen(b, A.r); err != nil {
		return NNLSResult{}, matrixErrorf(opNNLS, err)
	}
	rows, cols := A.r, A.c
	if rows == 0 || cols == 0 {
		return NNLSResult{}, matrixErrorf(opNNLS, ErrInvalidDimensions)
	}

	At, err := Transpose(A)
	if err != nil {
		return NNLSResult{}, matrixErrorf(opNNLS, err)
	}
	tol, zeroTol := o.nnlsTolerances(A)

	x := make([]float64, cols)
	passive := make([]int, 0, cols)
	active := make([]int, cols)
	for j := range active {
		active[j] = j
	}
	excluded := make([]bool, cols)
	allRows := make([]int, rows)
	for i := range allRows {
		allRows[i] = i
	}

	limit := o.nnlsCap(rows, cols)
	res := NNLSResult{}
	var w []float64

	for res.Iterations = 0; res.Iterations < limit; res.Iterations++ {
		if w, err = nnlsGradient(A, At, b, x); err != nil {
			return NNLSResult{}, matrixErrorf(opNNLS, err)
		}
		t, tMax := argmaxOver(w, active, excluded)
		if t < 0 || tMax <= tol || len(passive) >= rows {
			res.Converged = true
			break
		}

		trial := append(passive[:len(passive):len(passive)], t)
		z, err := nnlsSubproblem(A, allRows, trial, b, cols)
		if err != nil && !isDegenerate(err) {
			return NNLSResult{}, matrixErrorf(opNNLS, fmt.Errorf("passive set %v: %w", trial, err))
		}
		if err != nil || z[t] <= 0 {
			excluded[t] = true
			continue
		}
		passive = trial
		active = removeIndex(active, t)
		for j := range excluded {
			excluded[j] = false
		}

		for {
			allPositive := true
			for _, q := range passive {
				if z[q] <= 0 {
					allPositive = false
					break
				}
			}
			if allPositive {
				x = z
				break
			}

			alpha := math.MaxFloat64
			blocking := -1
			for _, q := range passive {
				if z[q] > 0 {
					continue
				}
				den := x[q] - z[q]
				ratio := 0.0
				if den != 0 {
					ratio = x[q] / den
				}
				if ratio < alpha {
					alpha, blocking = ratio, q
				}
			}
			for j := range x {
				x[j] += alpha * (z[j] - x[j])
			}

			kept := passive[:0]
			for _, q := range passive {
				if q == blocking || math.Abs(x[q]) < zeroTol {
					x[q] = 0
					active = append(active, q)
					continue
				}
				kept = append(kept, q)
			}
			passive = kept
			if len(passive) == 0 {
				break
			}
			if z, err = nnlsSubproblem(A, allRows, passive, b, cols); err != nil {
				return NNLSResult{}, matrixErrorf(opNNLS, fmt.Errorf("passive set %v: %w", passive, err))
			}
		}
	}

	if w, err = nnlsGradient(A, At, b, x); err != nil {
		return NNLSResult{}, matrixErrorf(opNNLS, err)
	}
	res.X = x
	res.Gradient = w
	res.Residual = residualNorm(A, b, x)

	return res, nil
}

// isDegenerate reports a passive subproblem without a unique solution.
func isDegenerate(err error) bool {
	return errors.Is(err, ErrRankDeficient) || errors.Is(err, ErrSingular)
}

// nnlsGradient returns w = Aᵀ(b − A·x).
func nnlsGradient(A *Dense, At Matrix, b, x []float64) ([]float64, error) {
	ax, err := MatVec(A, x)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(b))
	for i := range b {
		r[i] = b[i] - ax[i]
	}

	return MatVec(At, r)
}

// nnlsSubproblem solves the unconstrained least squares on the passive columns
// and scatters the solution back into a full-length vector (zeros elsewhere).
func nnlsSubproblem(A *Dense, allRows, passive []int, b []float64, cols int) ([]float64, error) {
	Ap, err := A.Induced(allRows, passive)
	if err != nil {
		return nil, err
	}
	zp, err := Solve(Ap, b)
	if err != nil {
		return nil, err
	}
	z := make([]float64, cols)
	for k, q := range passive {
		z[q] = zp[k]
	}

	return z, nil
}

// argmaxOver returns the index in set with the largest w value (first wins),
// skipping excluded indices. With no candidate it returns (-1, -Inf).
func argmaxOver(w []float64, set []int, excluded []bool) (int, float64) {
	best, bestVal := -1, math.Inf(-1)
	for _, j := range set {
		if excluded[j] {
			continue
		}
		if w[j] > bestVal {
			best, bestVal = j, w[j]
		}
	}

	return best, bestVal
}

// removeIndex deletes the first occurrence of v from s, preserving order.
func removeIndex(s []int, v int) []int {
	for k := range s {
		if s[k] == v {
			return append(s[:k], s[k+1:]...)
		}
	}

	return s
}

func residualNorm(A *Dense, b, x []float64) float64 {
	ax, err := MatVec(A, x)
	if err != nil {
		return math.NaN()
	}
	var s float64
	for i := range b {
		d := ax[i] - b[i]
		s += d * d
	}

	return math.Sqrt(s)
}
