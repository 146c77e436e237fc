// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/isoreduce/matrix"
	"github.com/stretchr/testify/require"
)

// TestKernels_FastPathMatchesFallback runs every binary kernel twice, once with
// *Dense operands and once with a hidden left operand, and demands identical output.
func TestKernels_FastPathMatchesFallback(t *testing.T) {
	t.Parallel()

	A := RandFilledDense(t, 4, 4, 11)
	B := RandFilledDense(t, 4, 4, 22)

	kernels := []struct {
		name string
		fn   func(a, b matrix.Matrix) (matrix.Matrix, error)
	}{
		{"Add", matrix.Add},
		{"Sub", matrix.Sub},
		{"Mul", matrix.Mul},
		{"Hadamard", matrix.Hadamard},
	}
	for _, k := range kernels {
		k := k
		t.Run(k.name, func(t *testing.T) {
			t.Parallel()
			fast, err := k.fn(A, B)
			require.NoError(t, err)
			slow, err := k.fn(hide{A}, B)
			require.NoError(t, err)
			CompareClose(t, fast, slow, 0, 1e-15)
		})
	}
}

func TestAddSubMulSmall(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	B := NewFilledDense(t, 2, 2, []float64{5, 6, 7, 8})

	sum, err := matrix.Add(A, B)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{6, 8}, {10, 12}}, sum)

	diff, err := matrix.Sub(B, A)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{4, 4}, {4, 4}}, diff)

	prod, err := matrix.Mul(A, B)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{19, 22}, {43, 50}}, prod)

	had, err := matrix.Hadamard(A, B)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{5, 12}, {21, 32}}, had)
}

func TestShapeErrors(t *testing.T) {
	t.Parallel()

	A := MustDense(t, 2, 3)
	B := MustDense(t, 2, 2)

	_, err := matrix.Add(A, B)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(B, hide{MustDense(t, 3, 1)})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Hadamard(nil, B)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.MatVec(A, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeScaleMatVec(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	At, err := matrix.Transpose(A)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, At)

	Ath, err := matrix.Transpose(hide{A})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, Ath)

	S, err := matrix.Scale(A, -2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, S)

	y, err := matrix.MatVec(A, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	yh, err := matrix.MatVec(hide{A}, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, y, yh)
}

func TestEigen_Symmetric2x2(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	eigs, Q, err := matrix.Eigen(A, 1e-12, 100)
	require.NoError(t, err)

	sorted := append([]float64(nil), eigs...)
	sort.Float64s(sorted)
	require.InDelta(t, 1.0, sorted[0], 1e-12)
	require.InDelta(t, 3.0, sorted[1], 1e-12)

	// A·q_k = λ_k·q_k for every column.
	for k := 0; k < 2; k++ {
		q := []float64{MustAt(t, Q, 0, k), MustAt(t, Q, 1, k)}
		Aq, err := matrix.MatVec(A, q)
		require.NoError(t, err)
		for i := range q {
			require.InDelta(t, eigs[k]*q[i], Aq[i], 1e-10)
		}
	}
}

func TestEigen_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.Eigen(NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4}), 1e-12, 10)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(MustDense(t, 2, 3), 1e-12, 10)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestToDense_Fallback(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	d, err := matrix.ToDense(hide{A})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, d)

	_, err = matrix.ToDense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
