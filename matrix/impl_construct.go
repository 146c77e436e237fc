// SPDX-License-Identifier: MIT

// Package matrix - constructors and structural builders.
//
// Purpose:
//   - Fill constructors (zeros, ones, constant, identity, diagonal).
//   - Kronecker product and finite differences, the two building blocks of the
//     truncated-power B-spline basis.
//   - Linspace with MATLAB endpoint semantics.
//
// All functions allocate fresh results and never mutate their inputs.

package matrix

import "fmt"

const (
	opKron     = "Kron"
	opDiff     = "Diff"
	opDiffRows = "DiffRows"
	opDiffCols = "DiffCols"
	opLinspace = "Linspace"
	opDiag     = "Diag"
	opFilled   = "NewFilled"
)

// NewZeros returns an r×c zero matrix (alias of NewDense).
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewOnes returns an r×c matrix of ones.
func NewOnes(rows, cols int) (*Dense, error) { return NewFilled(rows, cols, 1.0) }

// NewFilled returns an r×c matrix with every entry equal to v.
// Errors: ErrInvalidDimensions, ErrNaNInf (non-finite v).
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	if isNonFinite(v) {
		return nil, matrixErrorf(opFilled, ErrNaNInf)
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFilled, err)
	}
	for i := range m.data {
		m.data[i] = v
	}

	return m, nil
}

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// NewRowVector wraps v as a 1×len(v) matrix (copy).
func NewRowVector(v []float64) (*Dense, error) { return NewDenseFrom(1, len(v), v) }

// NewColVector wraps v as a len(v)×1 matrix (copy).
func NewColVector(v []float64) (*Dense, error) { return NewDenseFrom(len(v), 1, v) }

// Kron returns the Kronecker product a⊗b.
// MAIN DESCRIPTION:
//   - Block matrix whose (i,j) block is a[i,j]·b; shape (ra·rb)×(ca·cb).
//
// Implementation:
//   - Stage 1: normalise both operands to *Dense.
//   - Stage 2: for each a[i,j] write the scaled copy of b at offset (i·rb, j·cb).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(ra·ca·rb·cb), Space O(ra·ca·rb·cb).
//
// Notes:
//   - kron(x, ones(1,n)) and kron(ones(m,1), t) are how the B-spline builder
//     broadcasts evaluation points against knots.
func Kron(a, b Matrix) (*Dense, error) {
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	ra, ca, rb, cb := da.r, da.c, db.r, db.c
	out, err := NewDense(ra*rb, ca*cb)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	cols := ca * cb

	var (
		i, j, k, l int
		av         float64
		rowBase    int
	)
	for i = 0; i < ra; i++ {
		for j = 0; j < ca; j++ {
			av = da.data[i*ca+j]
			if av == 0 {
				continue
			}
			for k = 0; k < rb; k++ {
				rowBase = (i*rb+k)*cols + j*cb
				for l = 0; l < cb; l++ {
					out.data[rowBase+l] = av * db.data[k*cb+l]
				}
			}
		}
	}

	return out, nil
}

// DiffRows returns first differences down the rows: out[i,j] = m[i+1,j] − m[i,j].
// Shape (r−1)×c. Errors: ErrNilMatrix, ErrInvalidArgument when r < 2.
func DiffRows(m Matrix) (*Dense, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiffRows, err)
	}
	if d.r < 2 {
		return nil, matrixErrorf(opDiffRows, fmt.Errorf("rows=%d: %w", d.r, ErrInvalidArgument))
	}
	out, err := NewDense(d.r-1, d.c)
	if err != nil {
		return nil, matrixErrorf(opDiffRows, err)
	}
	c := d.c
	for i := 0; i < d.r-1; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = d.data[(i+1)*c+j] - d.data[i*c+j]
		}
	}

	return out, nil
}

// DiffCols returns first differences across the columns: out[i,j] = m[i,j+1] − m[i,j].
// Shape r×(c−1). Errors: ErrNilMatrix, ErrInvalidArgument when c < 2.
func DiffCols(m Matrix) (*Dense, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiffCols, err)
	}
	if d.c < 2 {
		return nil, matrixErrorf(opDiffCols, fmt.Errorf("cols=%d: %w", d.c, ErrInvalidArgument))
	}
	oc := d.c - 1
	out, err := NewDense(d.r, oc)
	if err != nil {
		return nil, matrixErrorf(opDiffCols, err)
	}
	for i := 0; i < d.r; i++ {
		for j := 0; j < oc; j++ {
			out.data[i*oc+j] = d.data[i*d.c+j+1] - d.data[i*d.c+j]
		}
	}

	return out, nil
}

// DiffRowsN applies DiffRows n times (n ≥ 0; n == 0 returns a copy).
func DiffRowsN(m Matrix, n int) (*Dense, error) {
	return diffN(m, n, DiffRows, opDiffRows)
}

// DiffColsN applies DiffCols n times (n ≥ 0; n == 0 returns a copy).
func DiffColsN(m Matrix, n int) (*Dense, error) {
	return diffN(m, n, DiffCols, opDiffCols)
}

// Diff follows MATLAB's diff(X, n): a row vector is differenced across its
// columns, anything else down its rows.
func Diff(m Matrix, n int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDiff, err)
	}
	if m.Rows() == 1 {
		return DiffColsN(m, n)
	}

	return DiffRowsN(m, n)
}

func diffN(m Matrix, n int, step func(Matrix) (*Dense, error), tag string) (*Dense, error) {
	if n < 0 {
		return nil, matrixErrorf(tag, fmt.Errorf("order %d: %w", n, ErrInvalidArgument))
	}
	cur, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if n == 0 {
		return cur.clone(), nil
	}
	for k := 0; k < n; k++ {
		if cur, err = step(cur); err != nil {
			return nil, err
		}
	}

	return cur, nil
}

// Linspace returns n equally spaced points from lo to hi inclusive.
// n == 1 yields [hi] (MATLAB convention). Errors: ErrInvalidArgument (n < 1),
// ErrNaNInf (non-finite bounds).
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, matrixErrorf(opLinspace, fmt.Errorf("n=%d: %w", n, ErrInvalidArgument))
	}
	if isNonFinite(lo) || isNonFinite(hi) {
		return nil, matrixErrorf(opLinspace, ErrNaNInf)
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = hi

		return out, nil
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out, nil
}

// Diag returns the square matrix with v on its main diagonal.
// Errors: ErrInvalidDimensions (empty v), ErrNaNInf.
func Diag(v []float64) (*Dense, error) {
	n := len(v)
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	for i, x := range v {
		if isNonFinite(x) {
			return nil, matrixErrorf(opDiag, ErrNaNInf)
		}
		m.data[i*n+i] = x
	}

	return m, nil
}

// DiagOf extracts the main diagonal (length min(rows, cols)).
func DiagOf(m Matrix) ([]float64, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	k := min(d.r, d.c)
	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = d.data[i*d.c+i]
	}

	return out, nil
}
