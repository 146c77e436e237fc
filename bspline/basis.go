// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/katalvlaran/isoreduce/matrix"
)

const (
	opBasis   = "Basis"
	opDomain  = "BasisOnDomain"
	opBlock   = "ForBlock"
	opKnots   = "Knots"
	signOdd   = -1.0
	signEven  = 1.0
	maskFalse = 0.0
)

func errorf(tag string, err error) error {
	return fmt.Errorf("bspline: %s: %w", tag, err)
}

// Basis returns the |x|×(nseg+degree) basis over [min x, max x].
//
// Errors: ErrEmptyInput, ErrInvalidSegments, ErrInvalidDegree,
// ErrDegenerateDomain (all x equal), matrix.ErrNaNInf.
func Basis(x []float64, nseg, degree int) (*matrix.Dense, error) {
	if len(x) == 0 {
		return nil, errorf(opBasis, ErrEmptyInput)
	}
	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	B, err := build(x, lo, hi, nseg, degree)
	if err != nil {
		return nil, errorf(opBasis, err)
	}

	return B, nil
}

// BasisOnDomain returns the basis over [min(xl, x[0]), max(xr, x[last])]:
// the requested domain, widened when the first or last abscissa falls outside.
//
// Errors: as Basis.
func BasisOnDomain(x []float64, xl, xr float64, nseg, degree int) (*matrix.Dense, error) {
	if len(x) == 0 {
		return nil, errorf(opDomain, ErrEmptyInput)
	}
	lo := math.Min(xl, x[0])
	hi := math.Max(xr, x[len(x)-1])
	B, err := build(x, lo, hi, nseg, degree)
	if err != nil {
		return nil, errorf(opDomain, err)
	}

	return B, nil
}

// ForBlock returns the basis for one block's on-peak timestamps, sized so it
// has exactly knotCount columns: nseg = knotCount − degree over [t0, tlast].
//
// Errors: ErrInvalidSegments when knotCount <= degree, otherwise as Basis.
func ForBlock(times []float64, knotCount, degree int) (*matrix.Dense, error) {
	if len(times) == 0 {
		return nil, errorf(opBlock, ErrEmptyInput)
	}
	nseg := knotCount - degree
	if nseg <= 0 {
		return nil, errorf(opBlock, fmt.Errorf("knotCount=%d degree=%d: %w", knotCount, degree, ErrInvalidSegments))
	}
	B, err := build(times, times[0], times[len(times)-1], nseg, degree)
	if err != nil {
		return nil, errorf(opBlock, err)
	}

	return B, nil
}

// Knots returns the nseg+2·degree+1 equally spaced knots for [xl, xr].
func Knots(xl, xr float64, nseg, degree int) ([]float64, error) {
	knots, _, err := knotVector(xl, xr, nseg, degree)
	if err != nil {
		return nil, errorf(opKnots, err)
	}

	return knots, nil
}

func knotVector(xl, xr float64, nseg, degree int) ([]float64, float64, error) {
	if nseg <= 0 {
		return nil, 0, fmt.Errorf("nseg=%d: %w", nseg, ErrInvalidSegments)
	}
	if degree < 0 {
		return nil, 0, fmt.Errorf("degree=%d: %w", degree, ErrInvalidDegree)
	}
	dx := (xr - xl) / float64(nseg)
	if !(dx > 0) || math.IsInf(dx, 0) {
		return nil, 0, fmt.Errorf("[%g, %g]: %w", xl, xr, ErrDegenerateDomain)
	}
	d := float64(degree)
	knots, err := matrix.Linspace(xl-d*dx, xr+d*dx, nseg+2*degree+1)
	if err != nil {
		return nil, 0, err
	}

	return knots, dx, nil
}

// build evaluates the truncated-power construction.
// Implementation:
//   - Stage 1: knots and spacing Δ.
//   - Stage 2: X = x ⊗ 1ᵀ, T = 1 ⊗ knots (both n×nt); P = (X−T)^d ⊙ [X ≥ T].
//   - Stage 3: D = diff(I_nt, d+1) scaled by (−1)^(d+1)/(Γ(d+1)Δ^d); B = P·Dᵀ.
//   - Stage 4: zero entries with x_i ≥ knots[j+d+1].
func build(x []float64, xl, xr float64, nseg, degree int) (*matrix.Dense, error) {
	knots, dx, err := knotVector(xl, xr, nseg, degree)
	if err != nil {
		return nil, err
	}
	n, nt := len(x), len(knots)

	xcol, err := matrix.NewColVector(x)
	if err != nil {
		return nil, err
	}
	onesRow, err := matrix.NewOnes(1, nt)
	if err != nil {
		return nil, err
	}
	onesCol, err := matrix.NewOnes(n, 1)
	if err != nil {
		return nil, err
	}
	krow, err := matrix.NewRowVector(knots)
	if err != nil {
		return nil, err
	}
	X, err := matrix.Kron(xcol, onesRow)
	if err != nil {
		return nil, err
	}
	T, err := matrix.Kron(onesCol, krow)
	if err != nil {
		return nil, err
	}

	XT, err := matrix.Sub(X, T)
	if err != nil {
		return nil, err
	}
	P, err := matrix.Pow(XT, float64(degree))
	if err != nil {
		return nil, err
	}
	ge, err := matrix.GreaterEqual(X, T)
	if err != nil {
		return nil, err
	}
	Pm, err := matrix.Hadamard(P, ge)
	if err != nil {
		return nil, err
	}

	I, err := matrix.NewIdentity(nt)
	if err != nil {
		return nil, err
	}
	D, err := matrix.Diff(I, degree+1)
	if err != nil {
		return nil, err
	}
	sign := signEven
	if (degree+1)%2 == 1 {
		sign = signOdd
	}
	Ds, err := matrix.Scale(D, sign/(math.Gamma(float64(degree+1))*math.Pow(dx, float64(degree))))
	if err != nil {
		return nil, err
	}
	Dt, err := matrix.Transpose(Ds)
	if err != nil {
		return nil, err
	}
	prod, err := matrix.Mul(Pm, Dt)
	if err != nil {
		return nil, err
	}
	B, err := matrix.ToDense(prod)
	if err != nil {
		return nil, err
	}

	nb := B.Cols()
	mask := make([]float64, n*nb)
	for i, xi := range x {
		for j := 0; j < nb; j++ {
			if xi < knots[j+degree+1] {
				mask[i*nb+j] = 1
			} else {
				mask[i*nb+j] = maskFalse
			}
		}
	}
	data := B.RawData()
	vecmath.MulBlockInPlace(data, mask)

	return matrix.NewDenseFrom(n, nb, data)
}
