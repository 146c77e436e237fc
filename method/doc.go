// SPDX-License-Identifier: MIT

// Package method describes an analysis method: which species are measured,
// which detectors read them, and the sequence table that says which species
// each detector sees under each sequence tag.
//
// A Method is plain data, decoded from YAML (Load, Decode) or built in code
// (BurdickSynthetic). It is validated once and then only read; the reduction
// packages never keep global species or detector tables.
//
// Ordering rules used downstream:
//   - species are ranked by ascending mass (SpeciesByMass, SpeciesRank);
//   - detectors are ranked by ascending ordinal (DetectorsByRole, DetectorRank);
//   - a detector ordinal is the column index into a row's readings.
package method
