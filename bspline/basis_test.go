// SPDX-License-Identifier: MIT

package bspline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoreduce/bspline"
	"github.com/katalvlaran/isoreduce/matrix"
)

const tol = 1e-9

func grid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}

func rowSums(t *testing.T, B *matrix.Dense) []float64 {
	t.Helper()
	s, err := matrix.RowSums(B)
	require.NoError(t, err)

	return s
}

func TestBasis_Shape(t *testing.T) {
	t.Parallel()
	x := grid(0, 10, 21)
	for _, tc := range []struct{ nseg, deg int }{{5, 3}, {1, 0}, {10, 2}, {3, 1}} {
		B, err := bspline.Basis(x, tc.nseg, tc.deg)
		require.NoError(t, err)
		assert.Equal(t, len(x), B.Rows())
		assert.Equal(t, tc.nseg+tc.deg, B.Cols(), "nseg=%d deg=%d", tc.nseg, tc.deg)
	}
}

func TestBasis_PartitionOfUnity(t *testing.T) {
	t.Parallel()
	x := grid(-3, 7, 41)
	for deg := 1; deg <= 3; deg++ {
		for _, nseg := range []int{1, 4, 9} {
			B, err := bspline.Basis(x, nseg, deg)
			require.NoError(t, err)
			for i, s := range rowSums(t, B) {
				assert.InDelta(t, 1.0, s, tol, "deg=%d nseg=%d row=%d", deg, nseg, i)
			}
			for _, v := range B.RawData() {
				assert.GreaterOrEqual(t, v, -tol)
			}
		}
	}
}

func TestBasis_DegreeZeroBoxes(t *testing.T) {
	t.Parallel()
	// knots 0,1,2,3,4; column j is the indicator of [j, j+1).
	x := []float64{0, 0.5, 1.5, 2, 3.25, 4}
	B, err := bspline.Basis(x, 4, 0)
	require.NoError(t, err)
	want := [][]float64{
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		// The right end lies on the last knot and is excluded by the half-open support.
		{0, 0, 0, 0},
	}
	for i, row := range want {
		got, err := B.Row(i)
		require.NoError(t, err)
		assert.InDeltaSlice(t, row, got, tol, "row %d", i)
	}
}

func TestBasis_LinearHats(t *testing.T) {
	t.Parallel()
	// nseg=2 on [0,1]: Δ=0.5, knots -0.5,0,0.5,1,1.5; hats centred at 0, 0.5, 1.
	x := []float64{0, 0.25, 0.5, 0.75, 1}
	B, err := bspline.Basis(x, 2, 1)
	require.NoError(t, err)
	want := [][]float64{
		{1, 0, 0},
		{0.5, 0.5, 0},
		{0, 1, 0},
		{0, 0.5, 0.5},
		{0, 0, 1},
	}
	for i, row := range want {
		got, err := B.Row(i)
		require.NoError(t, err)
		assert.InDeltaSlice(t, row, got, tol, "row %d", i)
	}
}

func TestBasis_CubicSymmetry(t *testing.T) {
	t.Parallel()
	// Uniform cubic B-spline at a knot: 1/6, 4/6, 1/6.
	x := []float64{0, 1, 2, 3, 4}
	B, err := bspline.Basis(x, 4, 3)
	require.NoError(t, err)
	got, err := B.Row(2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 1.0 / 6, 4.0 / 6, 1.0 / 6, 0, 0}, got, tol)
}

func TestBasisOnDomain(t *testing.T) {
	t.Parallel()
	x := grid(0, 1, 11)

	// Inner domain is widened back to the data range.
	inner, err := bspline.BasisOnDomain(x, 0.2, 0.8, 3, 2)
	require.NoError(t, err)
	plain, err := bspline.Basis(x, 3, 2)
	require.NoError(t, err)
	ok, err := matrix.AllClose(inner, plain, 0, tol)
	require.NoError(t, err)
	assert.True(t, ok)

	// Wider domain changes the basis but not its shape.
	wide, err := bspline.BasisOnDomain(x, -1, 2, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, plain.Rows(), wide.Rows())
	assert.Equal(t, plain.Cols(), wide.Cols())
	ok, err = matrix.AllClose(wide, plain, 0, tol)
	require.NoError(t, err)
	assert.False(t, ok)
	for _, s := range rowSums(t, wide) {
		assert.InDelta(t, 1.0, s, tol)
	}
}

func TestForBlock(t *testing.T) {
	t.Parallel()
	times := []float64{10, 10.5, 11, 12, 12.5, 14}
	B, err := bspline.ForBlock(times, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, B.Rows())
	assert.Equal(t, 4, B.Cols())
	for _, s := range rowSums(t, B) {
		assert.InDelta(t, 1.0, s, tol)
	}

	_, err = bspline.ForBlock(times, 3, 3)
	assert.ErrorIs(t, err, bspline.ErrInvalidSegments)
}

func TestKnots(t *testing.T) {
	t.Parallel()
	k, err := bspline.Knots(0, 1, 2, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 0, 0.5, 1, 1.5}, k, tol)

	_, err = bspline.Knots(1, 1, 2, 1)
	assert.ErrorIs(t, err, bspline.ErrDegenerateDomain)
}

func TestBasis_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    []float64
		nseg int
		deg  int
		want error
	}{
		{"Empty", nil, 3, 1, bspline.ErrEmptyInput},
		{"ZeroSegments", []float64{0, 1}, 0, 1, bspline.ErrInvalidSegments},
		{"NegativeDegree", []float64{0, 1}, 2, -1, bspline.ErrInvalidDegree},
		{"Constant", []float64{2, 2, 2}, 2, 1, bspline.ErrDegenerateDomain},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := bspline.Basis(tc.x, tc.nseg, tc.deg)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	_, err := bspline.BasisOnDomain(nil, 0, 1, 2, 1)
	assert.ErrorIs(t, err, bspline.ErrEmptyInput)
	_, err = bspline.ForBlock(nil, 4, 1)
	assert.ErrorIs(t, err, bspline.ErrEmptyInput)
}
