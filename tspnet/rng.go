// Package tspnet - RNG policy.
//
// All randomness — parameter initialization at construction and
// categorical sampling at decode time — flows from explicit seeds
// through this file.
//
// Goals:
//   - Determinism: same seed ⇒ identical parameters and samples across
//     platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden
//     anywhere.
//   - Independence: decode-time sampling streams are derived with a
//     SplitMix64-style mix so they never correlate with init streams.
package tspnet

import "golang.org/x/exp/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass
// seed==0. The value is arbitrary but stable to keep reproducible
// defaults.
const defaultRNGSeed uint64 = 1

// samplingStream tags the decode-time sampling stream in deriveSeed.
const samplingStream uint64 = 0x5a

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed uint64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier into a new
// 64-bit seed with the canonical SplitMix64 finalizer (strong bit
// diffusion: nearby inputs produce well-distributed outputs).
//
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// samplingSource returns the seeded source feeding distuv's categorical
// sampler for one decode call.
func samplingSource(seed uint64) rand.Source {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.NewSource(deriveSeed(s, samplingStream))
}
