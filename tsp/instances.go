// Package tsp - deterministic random instance generation.
//
// Instances are drawn uniformly from the unit square, the standard
// benchmark distribution for learned TSP solvers. Generation is fully
// seed-driven: same seed ⇒ identical batch, on every platform.
package tsp

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// defaultInstanceSeed is the fixed "zero" seed used when callers pass
// seed==0. Arbitrary but stable, to keep reproducible defaults.
const defaultInstanceSeed uint64 = 1

// RandomInstances generates bsz instances of n cities each, with
// coordinates uniform in [0,1)².
//
// Policy: seed==0 ⇒ defaultInstanceSeed; otherwise the seed verbatim.
//
// Complexity: O(bsz·n).
func RandomInstances(bsz, n int, seed uint64) ([]*mat.Dense, error) {
	if bsz <= 0 || n <= 0 {
		return nil, ErrBadInstanceSpec
	}

	s := seed
	if s == 0 {
		s = defaultInstanceSeed
	}
	rng := rand.New(rand.NewSource(s))

	out := make([]*mat.Dense, bsz)
	for b := range out {
		coords := mat.NewDense(n, 2, nil)
		for i := 0; i < n; i++ {
			coords.Set(i, 0, rng.Float64())
			coords.Set(i, 1, rng.Float64())
		}
		out[b] = coords
	}

	return out, nil
}
