// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over observation matrices (rows = observations,
//     columns = variables): means, centering, sample covariance and
//     Pearson correlation.
//   - Used to summarise MVN draws and to check sampler output in tests.
//
// Determinism:
//   - Fixed i→j traversal; compositions over Transpose/Mul/Scale.

package matrix

import "math"

const (
	opColumnMeans   = "ColumnMeans"
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
)

// columnMeans returns Σ_i X[i,j] / r per column.
func columnMeans(d *Dense) []float64 {
	means := make([]float64, d.c)
	if d.r == 0 {
		return means
	}
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			means[j] += d.data[base+j]
		}
	}
	inv := 1.0 / float64(d.r)
	for j := range means {
		means[j] *= inv
	}

	return means
}

// centerColumns subtracts the per-column mean from every element.
// Returns the centered copy and the means.
func centerColumns(X Matrix) (*Dense, []float64, error) {
	d, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	means := columnMeans(d)
	Xc, err := ewBroadcastSubCols(d, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// covariance computes the sample covariance of columns: (Xcᵀ Xc)/(r−1).
// Implementation:
//   - Stage 1: require r ≥ 2 (sample denominator).
//   - Stage 2: center columns once, then Transpose → Mul → Scale.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r < 2).
//
// Complexity:
//   - Time O(r·c²), Space O(r·c + c²).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := gram(Xc, 1.0/float64(X.Rows()-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return cov, means, nil
}

// correlation computes Pearson correlation via z-scoring.
// Columns with zero spread become zero rows/columns in the result.
func correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}
	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	c := Xc.c
	stds := make([]float64, c)
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			stds[j] += Xc.data[base+j] * Xc.data[base+j]
		}
	}
	invStd := make([]float64, c)
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / float64(r-1))
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}

	Z, err := ewScaleCols(Xc, invStd)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	corr, err := gram(Z, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	return corr, means, stds, nil
}

// gram returns alpha·(Xᵀ X).
func gram(X *Dense, alpha float64) (*Dense, error) {
	Xt, err := Transpose(X)
	if err != nil {
		return nil, err
	}
	G, err := Mul(Xt, X)
	if err != nil {
		return nil, err
	}
	S, err := Scale(G, alpha)
	if err != nil {
		return nil, err
	}

	return toDense(S)
}
