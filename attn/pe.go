// Package attn - sinusoidal positional encoding.
//
// The table is computed once at model construction and treated as
// process-wide read-only configuration afterwards: decode loops only
// ever slice rows out of it.
package attn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// peBase is the wavelength base of the standard sinusoidal encoding.
const peBase = 10000.0

// Table builds the maxLen×dim sinusoidal positional-encoding table:
//
//	pe[p, 2i]   = sin(p / base^(2i/dim))
//	pe[p, 2i+1] = cos(p / base^(2i/dim))
//
// Contract: maxLen ≥ 1, dim ≥ 1. Row p is the encoding added to the
// query of decoding step p.
//
// Complexity: O(maxLen·dim).
func Table(maxLen, dim int) *mat.Dense {
	pe := mat.NewDense(maxLen, dim, nil)
	for p := 0; p < maxLen; p++ {
		row := pe.RawRowView(p)
		for i := 0; i < dim; i += 2 {
			freq := math.Exp(-math.Log(peBase) * float64(i) / float64(dim))
			angle := float64(p) * freq
			row[i] = math.Sin(angle)
			if i+1 < dim {
				row[i+1] = math.Cos(angle)
			}
		}
	}

	return pe
}
