// SPDX-License-Identifier: MIT

// Package interp maps every on-peak timestamp of a block onto the block's
// cycle knots.
//
// A block with C on-peak cycles has C+1 knots: the first row of each cycle and
// the block's last row. Row t inside cycle c gets weight (1−f) on knot c and f
// on knot c+1, where f is its fractional time position between the two knots.
// Knot rows are unit rows and the last row is pinned to the final knot, so
// every row of the n×(C+1) matrix sums to 1. A cycle whose knots share a
// timestamp is pinned to its start knot instead of dividing by zero.
//
// DiscoverLayout derives blocks and cycle starts from raw rows; Build runs
// BuildBlock for every block concurrently and returns results in block order.
package interp
