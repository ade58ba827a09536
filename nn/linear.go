// Package nn - dense (fully connected) layer.
//
// Linear computes y = x·Wᵀ + b for a batch of row vectors. Parameters
// are initialized uniformly in ±1/√fanIn, matching the usual dense-layer
// default, so models built on top remain comparable to their reference
// configurations.
package nn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Linear is a learned affine map from In features to Out features.
type Linear struct {
	// W holds the weights, one output row per output feature (Out×In).
	W *mat.Dense
	// B holds the bias, one entry per output feature.
	B *mat.VecDense

	in, out int
}

// NewLinear constructs a Linear layer with uniform ±1/√in initialization.
//
// Contract:
//   - in > 0, out > 0, rng non-nil.
//
// Complexity: O(in·out).
func NewLinear(in, out int, rng *rand.Rand) (*Linear, error) {
	if in <= 0 || out <= 0 {
		return nil, ErrBadDims
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	bound := 1.0 / math.Sqrt(float64(in))
	w := mat.NewDense(out, in, nil)
	for r := 0; r < out; r++ {
		for c := 0; c < in; c++ {
			w.Set(r, c, uniform(rng, bound))
		}
	}
	b := mat.NewVecDense(out, nil)
	for r := 0; r < out; r++ {
		b.SetVec(r, uniform(rng, bound))
	}

	return &Linear{W: w, B: b, in: in, out: out}, nil
}

// In returns the input width of the layer.
func (l *Linear) In() int { return l.in }

// Out returns the output width of the layer.
func (l *Linear) Out() int { return l.out }

// Forward applies the layer to a batch of rows.
//
// Contract: x is n×In; the result is n×Out. Dimension misuse panics via
// gonum, as the caller owns shape validation.
//
// Complexity: O(n·in·out).
func (l *Linear) Forward(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	y := mat.NewDense(n, l.out, nil)
	y.Mul(x, l.W.T())
	for r := 0; r < n; r++ {
		for c := 0; c < l.out; c++ {
			y.Set(r, c, y.At(r, c)+l.B.AtVec(c))
		}
	}

	return y
}

// ForwardVec applies the layer to a single row vector.
//
// Contract: v has length In; the result has length Out.
//
// Complexity: O(in·out).
func (l *Linear) ForwardVec(v *mat.VecDense) *mat.VecDense {
	y := mat.NewVecDense(l.out, nil)
	y.MulVec(l.W, v)
	y.AddVec(y, l.B)

	return y
}

// uniform draws from the symmetric interval (-bound, bound).
func uniform(rng *rand.Rand, bound float64) float64 {
	return (2*rng.Float64() - 1) * bound
}
