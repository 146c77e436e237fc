// SPDX-License-Identifier: MIT

// Package matrix - factorizations and direct solvers.
//
// Purpose:
//   - LU with partial pivoting (square systems, Inverse).
//   - Householder QR for m×n (m ≥ n) least squares.
//   - Cholesky for symmetric positive-definite matrices (MVN sampling).
//   - Solve: LU when A is square, QR least squares otherwise. This is the
//     subproblem solver of the active-set NNLS.
//
// Determinism:
//   - Fixed loop orders; pivot ties resolve to the lowest row index.

package matrix

import (
	"fmt"
	"math"
)

const (
	opLU           = "LU"
	opQR           = "QR"
	opCholesky     = "Cholesky"
	opSolve        = "Solve"
	opLeastSquares = "LeastSquares"
	opInverse      = "Inverse"
)

// LUResult holds P·A = L·U with L unit lower-triangular.
//   - Perm[i] is the row of A that ended up in row i of P·A.
//   - Sign is +1/−1 for an even/odd number of row swaps.
type LUResult struct {
	L, U *Dense
	Perm []int
	Sign float64
}

// LU factors a square matrix with partial (row) pivoting.
// MAIN DESCRIPTION:
//   - Doolittle elimination in place on a working copy; at step k the row with
//     the largest |a[i,k]| (i ≥ k) becomes the pivot row.
//
// Implementation:
//   - Stage 1: validate non-nil & square; copy into a working buffer.
//   - Stage 2: for each column pick the pivot, swap rows, eliminate below.
//   - Stage 3: split the working buffer into L (unit diagonal) and U.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - ErrSingular when a pivot column is exactly zero.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix) (*LUResult, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := src.r
	w := src.clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var (
		i, j, k, p int
		maxAbs, v  float64
		factor     float64
	)
	for k = 0; k < n; k++ {
		// pivot search
		p = k
		maxAbs = math.Abs(w.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(w.data[i*n+k]); v > maxAbs {
				maxAbs, p = v, i
			}
		}
		if maxAbs == ZeroPivot {
			return nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				w.data[k*n+j], w.data[p*n+j] = w.data[p*n+j], w.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}
		for i = k + 1; i < n; i++ {
			factor = w.data[i*n+k] / w.data[k*n+k]
			w.data[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				w.data[i*n+j] -= factor * w.data[k*n+j]
			}
		}
	}

	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case i > j:
				L.data[i*n+j] = w.data[i*n+j]
			case i == j:
				L.data[i*n+j] = 1.0
				U.data[i*n+j] = w.data[i*n+j]
			default:
				U.data[i*n+j] = w.data[i*n+j]
			}
		}
	}

	return &LUResult{L: L, U: U, Perm: perm, Sign: sign}, nil
}

// Solve returns x with A·x = b using the stored factors.
// Errors: ErrDimensionMismatch (len(b) != n), ErrSingular (zero U diagonal).
func (f *LUResult) Solve(b []float64) ([]float64, error) {
	n := f.U.r
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	y := make([]float64, n)
	var (
		i, k int
		sum  float64
	)
	// forward: L·y = P·b
	for i = 0; i < n; i++ {
		sum = b[f.Perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.L.data[i*n+k] * y[k]
		}
		y[i] = sum
	}
	// backward: U·x = y
	x := make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= f.U.data[i*n+k] * x[k]
		}
		if f.U.data[i*n+i] == ZeroPivot {
			return nil, matrixErrorf(opSolve, ErrSingular)
		}
		x[i] = sum / f.U.data[i*n+i]
	}

	return x, nil
}

// Det returns det(A) = Sign·∏U[i,i].
func (f *LUResult) Det() float64 {
	d := f.Sign
	n := f.U.r
	for i := 0; i < n; i++ {
		d *= f.U.data[i*n+i]
	}

	return d
}

// QRResult stores a compact Householder factorization of an m×n matrix (m ≥ n).
// The lower trapezoid of qr holds the Householder vectors; rdiag holds R's diagonal.
type QRResult struct {
	m, n  int
	qr    []float64
	rdiag []float64
}

// QR computes the Householder factorization A = Q·R for m ≥ n.
// MAIN DESCRIPTION:
//   - Column by column, reflect A[k:m,k] onto a multiple of e_k; vectors are
//     kept in place so Q is never formed unless asked for.
//
// Errors:
//   - ErrNilMatrix.
//   - ErrDimensionMismatch when rows < cols.
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
//
// Notes:
//   - A zero column yields rdiag[k] == 0; FullRank reports it and
//     LeastSquares fails with ErrRankDeficient.
func QR(a Matrix) (*QRResult, error) {
	src, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opQR, err)
	}
	m, n := src.r, src.c
	if m < n {
		return nil, matrixErrorf(opQR, fmt.Errorf("rows %d < cols %d: %w", m, n, ErrDimensionMismatch))
	}
	qr := make([]float64, len(src.data))
	copy(qr, src.data)
	rdiag := make([]float64, n)

	var (
		i, j, k int
		nrm, s  float64
	)
	for k = 0; k < n; k++ {
		nrm = NormZero
		for i = k; i < m; i++ {
			nrm = math.Hypot(nrm, qr[i*n+k])
		}
		if nrm != NormZero {
			if qr[k*n+k] < 0 {
				nrm = -nrm
			}
			for i = k; i < m; i++ {
				qr[i*n+k] /= nrm
			}
			qr[k*n+k] += 1.0
			for j = k + 1; j < n; j++ {
				s = ZeroSum
				for i = k; i < m; i++ {
					s += qr[i*n+k] * qr[i*n+j]
				}
				s = -s / qr[k*n+k]
				for i = k; i < m; i++ {
					qr[i*n+j] += s * qr[i*n+k]
				}
			}
		}
		rdiag[k] = -nrm
	}

	return &QRResult{m: m, n: n, qr: qr, rdiag: rdiag}, nil
}

// FullRank reports whether every diagonal entry of R is non-zero.
func (f *QRResult) FullRank() bool {
	for _, d := range f.rdiag {
		if d == 0 {
			return false
		}
	}

	return true
}

// R returns the n×n upper-triangular factor.
func (f *QRResult) R() *Dense {
	n := f.n
	r := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < n; i++ {
		r.data[i*n+i] = f.rdiag[i]
		for j := i + 1; j < n; j++ {
			r.data[i*n+j] = f.qr[i*n+j]
		}
	}

	return r
}

// Q returns the m×n matrix with orthonormal columns (thin Q).
func (f *QRResult) Q() *Dense {
	m, n := f.m, f.n
	q := &Dense{r: m, c: n, data: make([]float64, m*n), validateNaNInf: DefaultValidateNaNInf}
	var (
		i, j, k int
		s       float64
	)
	for k = n - 1; k >= 0; k-- {
		q.data[k*n+k] = 1.0
		for j = k; j < n; j++ {
			if f.qr[k*n+k] == 0 {
				continue
			}
			s = ZeroSum
			for i = k; i < m; i++ {
				s += f.qr[i*n+k] * q.data[i*n+j]
			}
			s = -s / f.qr[k*n+k]
			for i = k; i < m; i++ {
				q.data[i*n+j] += s * f.qr[i*n+k]
			}
		}
	}

	return q
}

// LeastSquares returns x minimizing ‖A·x − b‖₂.
// Errors: ErrDimensionMismatch (len(b) != m), ErrRankDeficient.
func (f *QRResult) LeastSquares(b []float64) ([]float64, error) {
	m, n := f.m, f.n
	if err := ValidateVecLen(b, m); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if !f.FullRank() {
		return nil, matrixErrorf(opLeastSquares, ErrRankDeficient)
	}
	x := make([]float64, m)
	copy(x, b)

	var (
		i, k int
		s    float64
	)
	// x = Qᵀ·b
	for k = 0; k < n; k++ {
		s = ZeroSum
		for i = k; i < m; i++ {
			s += f.qr[i*n+k] * x[i]
		}
		s = -s / f.qr[k*n+k]
		for i = k; i < m; i++ {
			x[i] += s * f.qr[i*n+k]
		}
	}
	// R·x = Qᵀ·b
	for k = n - 1; k >= 0; k-- {
		x[k] /= f.rdiag[k]
		for i = 0; i < k; i++ {
			x[i] -= x[k] * f.qr[i*n+k]
		}
	}

	return x[:n], nil
}

// Cholesky returns the lower-triangular L with A = L·Lᵀ.
// MAIN DESCRIPTION:
//   - Cholesky–Banachiewicz, row by row.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(A, eps) with eps from options (DefaultEpsilon).
//   - Stage 2: for each row j compute L[j,k] (k<j) then d = A[j,j] − Σ L[j,k]².
//   - Stage 3: d ≤ 0 (or NaN) ⇒ ErrNotPositiveDefinite; else L[j,j] = √d.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
//
// Notes:
//   - No jitter or eigenvalue clipping: a failing matrix is reported, never repaired.
func Cholesky(a Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(a, o.eps); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	src, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := src.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k int
		s, d    float64
	)
	for j = 0; j < n; j++ {
		d = ZeroSum
		for k = 0; k < j; k++ {
			s = src.data[j*n+k]
			for i = 0; i < k; i++ {
				s -= L.data[k*n+i] * L.data[j*n+i]
			}
			s /= L.data[k*n+k]
			L.data[j*n+k] = s
			d += s * s
		}
		d = src.data[j*n+j] - d
		if d <= 0 || math.IsNaN(d) {
			return nil, matrixErrorf(opCholesky, fmt.Errorf("leading minor %d: %w", j+1, ErrNotPositiveDefinite))
		}
		L.data[j*n+j] = math.Sqrt(d)
	}

	return L, nil
}

// Solve returns x for A·x = b: LU with partial pivoting when A is square,
// Householder least squares when A is tall.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(b) != rows or rows < cols).
//   - ErrSingular (square, singular) or ErrRankDeficient (tall, dependent columns).
func Solve(a Matrix, b []float64) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if a.Rows() == a.Cols() {
		f, err := LU(a)
		if err != nil {
			return nil, matrixErrorf(opSolve, err)
		}
		x, err := f.Solve(b)
		if err != nil {
			return nil, matrixErrorf(opSolve, err)
		}

		return x, nil
	}
	if a.Rows() < a.Cols() {
		return nil, matrixErrorf(opSolve, ErrRankDeficient)
	}
	f, err := QR(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x, err := f.LeastSquares(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return x, nil
}

// Inverse returns A⁻¹ for a square non-singular A (column-by-column LU solves).
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
func Inverse(m Matrix) (Matrix, error) {
	f, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.U.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := f.Solve(e)
		if err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
