// SPDX-License-Identifier: MIT

// Package reduce assembles the reduced data record for one analysis.
//
// Reduce runs the three accumulation passes (baseline Faraday, on-peak
// Faraday, on-peak ion counter) and the per-block interpolation build
// concurrently, then concatenates the passes in that fixed order. The
// resulting *Record is immutable: WithColumn returns a new record carrying an
// extra derived column and leaves the receiver untouched.
//
// Columns is the flat output form: the accumulated columns plus one isotope
// flag column per species and one detector flag column per configured detector.
package reduce
