// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/isoreduce/matrix"
)

// 1) TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	t.Parallel()

	o := matrix.NewMatrixOptions()
	if o.Epsilon() != matrix.DefaultEpsilon {
		t.Fatalf("eps default mismatch: got %v, want %v", o.Epsilon(), matrix.DefaultEpsilon)
	}
	if o.ValidateNaNInf() != matrix.DefaultValidateNaNInf {
		t.Fatalf("validateNaNInf default mismatch: got %v", o.ValidateNaNInf())
	}
	if o.NNLSTolerance() != matrix.DefaultNNLSTolerance {
		t.Fatalf("nnls tol default mismatch: got %v", o.NNLSTolerance())
	}
}

// 2) TestOptions_LastWriterWins ensures repeated setters resolve to the last value.
func TestOptions_LastWriterWins(t *testing.T) {
	t.Parallel()

	o := matrix.NewMatrixOptions(matrix.WithEpsilon(1e-3), matrix.WithEpsilon(1e-6))
	if got := o.Epsilon(); got != 1e-6 {
		t.Fatalf("eps: got %v, want 1e-6", got)
	}
	o = matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	if !o.ValidateNaNInf() {
		t.Fatalf("validateNaNInf: want true")
	}
	o = matrix.NewMatrixOptions(matrix.WithNNLSTolerance(1e-8))
	if got := o.NNLSTolerance(); got != 1e-8 {
		t.Fatalf("nnls tol: got %v", got)
	}
}

// 3) TestOptions_PanicOnInvalid covers every validated setter.
func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	ExpectPanic(t, func() { matrix.WithEpsilon(-1) })
	ExpectPanic(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	ExpectPanic(t, func() { matrix.WithNNLSTolerance(math.NaN()) })
	ExpectPanic(t, func() { matrix.WithNNLSZeroTolerance(-1e-3) })
	ExpectPanic(t, func() { matrix.WithNNLSMaxIterations(0) })
}
