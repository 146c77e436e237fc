// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/isoreduce/matrix"
	"github.com/stretchr/testify/require"
)

func TestLU_PivotsAndSolves(t *testing.T) {
	t.Parallel()

	// A[0,0] == 0 forces a row swap.
	A := NewFilledDense(t, 3, 3, []float64{
		0, 2, 1,
		1, 1, 1,
		2, 1, 3,
	})
	f, err := matrix.LU(A)
	require.NoError(t, err)

	// P·A == L·U
	LU, err := matrix.Mul(f.L, f.U)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, MustAt(t, A, f.Perm[i], j), MustAt(t, LU, i, j), 1e-12)
		}
	}

	x, err := f.Solve([]float64{3, 3, 6})
	require.NoError(t, err)
	sliceClose(t, x, []float64{1, 1, 1}, 0, 1e-12)

	// det = 0*(3-1) - 2*(3-2) + 1*(1-2) = -3
	require.InDelta(t, -3.0, f.Det(), 1e-12)
}

func TestLU_Singular(t *testing.T) {
	t.Parallel()

	_, err := matrix.LU(NewFilledDense(t, 2, 2, []float64{1, 2, 2, 4}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.LU(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestQR_Reconstructs(t *testing.T) {
	t.Parallel()

	A := RandFilledDense(t, 5, 3, 7)
	f, err := matrix.QR(A)
	require.NoError(t, err)
	require.True(t, f.FullRank())

	QR, err := matrix.Mul(f.Q(), f.R())
	require.NoError(t, err)
	CompareClose(t, A, QR, 0, 1e-12)

	// QᵀQ == I
	Qt, err := matrix.Transpose(f.Q())
	require.NoError(t, err)
	QtQ, err := matrix.Mul(Qt, f.Q())
	require.NoError(t, err)
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	CompareClose(t, I, QtQ, 0, 1e-12)
}

func TestQR_LeastSquares(t *testing.T) {
	t.Parallel()

	// Fit y = 1 + 2x exactly.
	A := NewFilledDense(t, 4, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3})
	f, err := matrix.QR(A)
	require.NoError(t, err)
	x, err := f.LeastSquares([]float64{1, 3, 5, 7})
	require.NoError(t, err)
	sliceClose(t, x, []float64{1, 2}, 0, 1e-12)

	_, err = matrix.QR(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestQR_RankDeficient(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 3, 2, []float64{1, 0, 2, 0, 3, 0})
	f, err := matrix.QR(A)
	require.NoError(t, err)
	require.False(t, f.FullRank())
	_, err = f.LeastSquares([]float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
}

func TestCholesky(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a       []float64
		want    [][]float64
		wantErr error
	}{
		{
			name: "spd 2x2",
			a:    []float64{4, 2, 2, 3},
			want: [][]float64{{2, 0}, {1, math.Sqrt2}},
		},
		{
			name:    "indefinite",
			a:       []float64{1, 2, 2, 1},
			wantErr: matrix.ErrNotPositiveDefinite,
		},
		{
			name:    "semidefinite",
			a:       []float64{1, 1, 1, 1},
			wantErr: matrix.ErrNotPositiveDefinite,
		},
		{
			name:    "asymmetric",
			a:       []float64{4, 2, 1, 3},
			wantErr: matrix.ErrAsymmetry,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			L, err := matrix.Cholesky(NewFilledDense(t, 2, 2, tc.a))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			for i := range tc.want {
				for j := range tc.want[i] {
					require.InDelta(t, tc.want[i][j], MustAt(t, L, i, j), 1e-12)
				}
			}
		})
	}
}

func TestCholesky_ReconstructsRandomSPD(t *testing.T) {
	t.Parallel()

	// A = BᵀB + n·I is SPD for any B.
	B := RandFilledDense(t, 6, 6, 99)
	Bt, err := matrix.Transpose(B)
	require.NoError(t, err)
	G, err := matrix.Mul(Bt, B)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(6)
	require.NoError(t, err)
	I6, err := matrix.Scale(I, 6)
	require.NoError(t, err)
	A, err := matrix.Add(G, I6)
	require.NoError(t, err)

	L, err := matrix.Cholesky(A)
	require.NoError(t, err)
	Lt, err := matrix.Transpose(L)
	require.NoError(t, err)
	LLt, err := matrix.Mul(L, Lt)
	require.NoError(t, err)
	CompareClose(t, A, LLt, 1e-12, 1e-12)
}

func TestSolveAndInverse(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{4, 7, 2, 6})
	x, err := matrix.Solve(A, []float64{1, 0})
	require.NoError(t, err)
	sliceClose(t, x, []float64{0.6, -0.2}, 0, 1e-12)

	inv, err := matrix.Inverse(A)
	require.NoError(t, err)
	AI, err := matrix.Mul(A, inv)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	CompareClose(t, I, AI, 0, 1e-12)

	_, err = matrix.Solve(MustDense(t, 2, 3), []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
	_, err = matrix.Solve(A, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
