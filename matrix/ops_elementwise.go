// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Private broadcast micro-kernels shared by the statistics layer and the
//     readout pipeline (per-column offsets and gains, closeness checks).
//   - Keep the flat-slice loops in one place; public facades live in api.go.

package matrix

import "math"

const (
	opBroadcastSubCols = "broadcastSubCols"
	opScaleCols        = "scaleCols"
	opAllClose         = "AllClose"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - v[j].
// Used for column centering (v = means) and baseline subtraction (v = per-detector baseline).
func ewBroadcastSubCols(X Matrix, v []float64) (*Dense, error) {
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}
	if len(v) != d.c {
		return nil, matrixErrorf(opBroadcastSubCols, ErrDimensionMismatch)
	}
	out := d.clone()
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			out.data[base+j] -= v[j]
		}
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * s[j].
func ewScaleCols(X Matrix, s []float64) (*Dense, error) {
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	if len(s) != d.c {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}
	out := d.clone()
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			out.data[base+j] *= s[j]
		}
	}

	return out, nil
}

// ewAllClose reports whether |a-b| ≤ atol + rtol·|b| holds everywhere.
// Negative tolerances are taken by absolute value.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
			return false, nil
		}
	}

	return true, nil
}
