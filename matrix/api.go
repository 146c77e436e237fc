// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Thin entry points over the private kernels (statistics, column
//     broadcasts, reductions). No loop is duplicated here.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast paths.
//   - Use ColumnMeans/Covariance to summarise row-per-draw sample matrices.

package matrix

// RowSums returns r[i] = Σ_j m[i,j] (MatVec against ones).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1.0
	}

	return MatVec(m, ones)
}

// ColSums returns c[j] = Σ_i m[i,j].
func ColSums(m Matrix) ([]float64, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("ColSums", err)
	}

	return RowSums(mt)
}

// SubtractColumns returns X[i,j] − v[j] for every row.
func SubtractColumns(X Matrix, v []float64) (*Dense, error) { return ewBroadcastSubCols(X, v) }

// ScaleColumns returns X[i,j] · s[j] for every row.
func ScaleColumns(X Matrix, s []float64) (*Dense, error) { return ewScaleCols(X, s) }

// AllClose checks |a−b| ≤ atol + rtol·|b| elementwise on same-shaped operands.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ColumnMeans returns the per-column mean of X.
func ColumnMeans(X Matrix) ([]float64, error) {
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}

	return columnMeans(d), nil
}

// CenterColumns returns X − mean(X) by columns, and the means.
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// Covariance computes the sample covariance of columns, (Xcᵀ Xc)/(n−1),
// and returns it with the column means. Requires at least two rows.
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// Correlation computes the Pearson correlation of columns.
// Returns Corr, means and sample standard deviations.
func Correlation(X Matrix) (*Dense, []float64, []float64, error) { return correlation(X) }
