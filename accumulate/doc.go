// SPDX-License-Identifier: MIT

// Package accumulate turns raw integration rows into the per-sample channel
// consumed by the reduction model.
//
// A reduction uses three passes, concatenated in this order:
//
//  1. Baseline over Faraday detectors (Baseline with method.Faraday);
//  2. on-peak over Faraday detectors (OnPeak with method.Faraday);
//  3. on-peak over ion-counting detectors (OnPeak with method.IonCounter).
//
// Within a pass each detector of the role gets a signal index 1..k in
// ascending ordinal order. Concat shifts every later pass by the signal span
// of the passes before it, so a signal index names one (pass, detector) pair
// across the whole channel.
//
// A configured (detector, tag) pair that matches no row contributes nothing;
// it is logged at warn level and reported in Channel.Warnings. A detector
// ordinal beyond a row's readings fails the pass with an
// *ingest.MalformedInputError.
package accumulate
