// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/isoreduce/matrix"
	"github.com/stretchr/testify/require"
)

func TestFillConstructors(t *testing.T) {
	t.Parallel()

	ones, err := matrix.NewOnes(2, 3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 1, 1}, {1, 1, 1}}, ones)

	f, err := matrix.NewFilled(1, 2, 2.5)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{2.5, 2.5}}, f)

	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0}, {0, 1}}, I)

	row, err := matrix.NewRowVector([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 1, row.Rows())
	col, err := matrix.NewColVector([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, col.Rows())

	_, err = matrix.NewZeros(0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestKron(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 2, []float64{1, 2})
	b := NewFilledDense(t, 2, 1, []float64{1, 10})
	k, err := matrix.Kron(a, b)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2}, {10, 20}}, k)

	// kron(x, ones(1,3)) repeats x across columns.
	x := NewFilledDense(t, 2, 1, []float64{4, 5})
	ones, err := matrix.NewOnes(1, 3)
	require.NoError(t, err)
	k, err = matrix.Kron(hide{x}, ones)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{4, 4, 4}, {5, 5, 5}}, k)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)

	d1, err := matrix.DiffRows(I)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-1, 1, 0}, {0, -1, 1}}, d1)

	d2, err := matrix.Diff(I, 2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, -2, 1}}, d2)

	rv := NewFilledDense(t, 1, 4, []float64{1, 4, 9, 16})
	dv, err := matrix.Diff(rv, 1)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{3, 5, 7}}, dv)

	dc, err := matrix.DiffColsN(rv, 2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{2, 2}}, dc)

	same, err := matrix.DiffRowsN(I, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, same)

	_, err = matrix.Diff(I, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = matrix.DiffRowsN(I, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestLinspace(t *testing.T) {
	t.Parallel()

	v, err := matrix.Linspace(0, 1, 5)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, v)

	v, err = matrix.Linspace(3, 7, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{7}, v)

	_, err = matrix.Linspace(0, 1, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestDiag(t *testing.T) {
	t.Parallel()

	D, err := matrix.Diag([]float64{1, 2})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0}, {0, 2}}, D)

	d, err := matrix.DiagOf(NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5}, d)

	_, err = matrix.Diag(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
