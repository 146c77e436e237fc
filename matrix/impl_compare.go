// SPDX-License-Identifier: MIT

// Package matrix - elementwise maps, comparison masks and searches.
//
// Masks are 0/1 matrices of the operand's shape, ready to be multiplied in
// with Hadamard. Find/Any mirror their MATLAB namesakes on such masks.

package matrix

import (
	"fmt"
	"math"
)

const (
	opCompare   = "Compare"
	opPow       = "Pow"
	opDivScalar = "DivScalar"
	opRDivide   = "RDivide"
	opMaxScalar = "MaxScalar"
	opFind      = "Find"
	opAny       = "Any"
)

// mapDense clones m into a Dense and applies f to every element.
// Non-finite outputs are rejected by the clone's numeric policy.
func mapDense(m Matrix, tag string, f func(v float64) float64) (*Dense, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	out := d.clone()
	out.validateNaNInf = true
	if err = out.Apply(func(_, _ int, v float64) float64 { return f(v) }); err != nil {
		return nil, matrixErrorf(tag, err)
	}

	return out, nil
}

// compareDense builds a 0/1 mask from two same-shaped operands.
func compareDense(a, b Matrix, pred func(x, y float64) bool) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opCompare, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opCompare, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opCompare, err)
	}
	out, err := newDenseZeroOK(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opCompare, err)
	}
	for i := range da.data {
		if pred(da.data[i], db.data[i]) {
			out.data[i] = 1
		}
	}

	return out, nil
}

// GreaterEqual returns the mask a ≥ b.
func GreaterEqual(a, b Matrix) (*Dense, error) {
	return compareDense(a, b, func(x, y float64) bool { return x >= y })
}

// GreaterThan returns the mask a > b.
func GreaterThan(a, b Matrix) (*Dense, error) {
	return compareDense(a, b, func(x, y float64) bool { return x > y })
}

// LessThan returns the mask a < b.
func LessThan(a, b Matrix) (*Dense, error) {
	return compareDense(a, b, func(x, y float64) bool { return x < y })
}

// LessEqual returns the mask a ≤ b.
func LessEqual(a, b Matrix) (*Dense, error) {
	return compareDense(a, b, func(x, y float64) bool { return x <= y })
}

func scalarMask(m Matrix, pred func(v float64) bool) (*Dense, error) {
	return mapDense(m, opCompare, func(v float64) float64 {
		if pred(v) {
			return 1
		}

		return 0
	})
}

// GreaterEqualScalar returns the mask m ≥ s.
func GreaterEqualScalar(m Matrix, s float64) (*Dense, error) {
	return scalarMask(m, func(v float64) bool { return v >= s })
}

// GreaterThanScalar returns the mask m > s.
func GreaterThanScalar(m Matrix, s float64) (*Dense, error) {
	return scalarMask(m, func(v float64) bool { return v > s })
}

// LessEqualScalar returns the mask m ≤ s.
func LessEqualScalar(m Matrix, s float64) (*Dense, error) {
	return scalarMask(m, func(v float64) bool { return v <= s })
}

// LessThanScalar returns the mask m < s.
func LessThanScalar(m Matrix, s float64) (*Dense, error) {
	return scalarMask(m, func(v float64) bool { return v < s })
}

// Pow raises every element to p. 0^0 is 1 (math.Pow).
// Errors: ErrNaNInf when a result is not finite (e.g., negative base, fractional p).
func Pow(m Matrix, p float64) (*Dense, error) {
	if p == 1 {
		return mapDense(m, opPow, func(v float64) float64 { return v })
	}

	return mapDense(m, opPow, func(v float64) float64 { return math.Pow(v, p) })
}

// DivScalar returns m / d elementwise. Errors: ErrInvalidArgument when d == 0.
func DivScalar(m Matrix, d float64) (*Dense, error) {
	if d == 0 || isNonFinite(d) {
		return nil, matrixErrorf(opDivScalar, fmt.Errorf("divisor %g: %w", d, ErrInvalidArgument))
	}

	return mapDense(m, opDivScalar, func(v float64) float64 { return v / d })
}

// RDivide returns num ./ m (scalar divided by every element).
// Errors: ErrNaNInf when an element is zero.
func RDivide(num float64, m Matrix) (*Dense, error) {
	return mapDense(m, opRDivide, func(v float64) float64 { return num / v })
}

// MaxScalar returns max(m, floor) elementwise.
func MaxScalar(m Matrix, floor float64) (*Dense, error) {
	return mapDense(m, opMaxScalar, func(v float64) float64 { return math.Max(v, floor) })
}

// Find returns up to n column-major linear indices of strictly positive
// entries. fromEnd scans backwards from the last element (MATLAB 'last').
// n ≤ 0 returns every hit.
func Find(m Matrix, n int, fromEnd bool) ([]int, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opFind, err)
	}
	total := d.r * d.c
	if n <= 0 || n > total {
		n = total
	}
	out := make([]int, 0, n)
	visit := func(lin int) bool {
		i, j := lin%d.r, lin/d.r
		if d.data[i*d.c+j] > 0 {
			out = append(out, lin)
		}

		return len(out) < n
	}
	if fromEnd {
		for lin := total - 1; lin >= 0; lin-- {
			if !visit(lin) {
				break
			}
		}
	} else {
		for lin := 0; lin < total; lin++ {
			if !visit(lin) {
				break
			}
		}
	}

	return out, nil
}

// Any reduces along a dimension: dim 1 gives a 1×c row flagging columns with
// a non-zero entry, dim 2 gives an r×1 column flagging rows.
// Errors: ErrInvalidArgument for other dims.
func Any(m Matrix, dim int) (*Dense, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opAny, err)
	}
	var out *Dense
	switch dim {
	case 1:
		if out, err = newDenseZeroOK(1, d.c); err != nil {
			return nil, matrixErrorf(opAny, err)
		}
		for j := 0; j < d.c; j++ {
			for i := 0; i < d.r; i++ {
				if d.data[i*d.c+j] != 0 {
					out.data[j] = 1
					break
				}
			}
		}
	case 2:
		if out, err = newDenseZeroOK(d.r, 1); err != nil {
			return nil, matrixErrorf(opAny, err)
		}
		for i := 0; i < d.r; i++ {
			for j := 0; j < d.c; j++ {
				if d.data[i*d.c+j] != 0 {
					out.data[i] = 1
					break
				}
			}
		}
	default:
		return nil, matrixErrorf(opAny, fmt.Errorf("dim %d: %w", dim, ErrInvalidArgument))
	}

	return out, nil
}
