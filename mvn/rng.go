// SPDX-License-Identifier: MIT

// Package mvn - RNG construction.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every Sampler owns its stream.
package mvn

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}
