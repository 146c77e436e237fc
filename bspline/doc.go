// SPDX-License-Identifier: MIT

// Package bspline builds equally spaced B-spline bases with the
// truncated-power construction of Eilers & Marx.
//
// For abscissae x (length n), a domain [xl, xr], nseg segments and degree d:
//
//	Δ     = (xr − xl) / nseg
//	knots = linspace(xl − dΔ, xr + dΔ, nseg + 2d + 1)
//	P     = (X − T)^d ⊙ [X ≥ T]
//	D     = diff(I, d + 1) · (−1)^(d+1) / (Γ(d+1) Δ^d)
//	B     = (P · Dᵀ) ⊙ [x_i < knots[j+d+1]]
//
// B is n × (nseg + d). Inside the domain every row sums to 1 and every entry is
// non-negative (up to rounding); the mask removes the truncated-power noise
// that would otherwise leak past each function's support.
//
// All matrix work goes through package matrix; the package is stateless and
// safe for concurrent use.
package bspline
