// SPDX-License-Identifier: MIT

// Package matrix is the dense numerical toolkit behind the isotope reduction.
//
// One abstraction: a row-major *Dense buffer (offset i*cols + j) behind the
// small Matrix interface. Every kernel has a *Dense fast path and an At/Set
// fallback, allocates its result fresh and never mutates its operands.
//
// Contents:
//   - arithmetic: Add, Sub, Mul, Scale, Hadamard, Transpose, MatVec, Kron;
//   - elementwise: Pow, RDivide, DivScalar, MaxScalar and the comparison masks
//     (GreaterEqual, GreaterThan, LessThan, LessEqual, *Scalar variants);
//   - construction: NewOnes, NewFilled, NewFromRows, Linspace, Diag, DiagOf,
//     DiffRows/DiffCols (single and n-th order);
//   - search: Find (first/last n positive entries, column-major), Any;
//   - factorizations: LU (partial pivoting), QR (Householder), Cholesky, Eigen (Jacobi);
//   - solvers: Solve, LeastSquares, Inverse and the active-set NNLS;
//   - statistics: CenterColumns, Covariance, Correlation.
//
// Errors are package sentinels (errors.go) wrapped with an operation tag;
// match them with errors.Is.
package matrix
