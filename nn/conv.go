// Package nn - 1D convolution over a feature sequence.
//
// Conv1d slides a kernel of width K over the rows of an n×in input and
// emits one out-wide vector per window. Two paddings are offered:
//
//   - Forward: "valid" — output length n−K+1; used on fixed-size
//     neighbor windows where the kernel spans the whole window.
//   - ForwardSame: "same" — zero padding (K−1)/2 left, K/2 right,
//     output length n; used when convolving the node sequence directly.
package nn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Conv1d is a learned 1D convolution with In input channels, Out output
// channels and kernel width K.
type Conv1d struct {
	// W holds one flattened kernel per output channel: Out×(K·In).
	// Column layout is window-position-major: tap t of channel c sits at
	// column t·In+c.
	W *mat.Dense
	// B holds the bias, one entry per output channel.
	B *mat.VecDense

	in, out, k int
}

// NewConv1d constructs a Conv1d with uniform ±1/√(in·k) initialization.
//
// Contract: in, out, k all positive; rng non-nil.
func NewConv1d(in, out, k int, rng *rand.Rand) (*Conv1d, error) {
	if in <= 0 || out <= 0 || k <= 0 {
		return nil, ErrBadDims
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	lin, err := NewLinear(in*k, out, rng)
	if err != nil {
		return nil, err
	}

	return &Conv1d{W: lin.W, B: lin.B, in: in, out: out, k: k}, nil
}

// Kernel returns the kernel width K.
func (c *Conv1d) Kernel() int { return c.k }

// Forward applies a valid convolution to x (n×In), n ≥ K.
//
// Complexity: O((n−K+1)·K·in·out).
func (c *Conv1d) Forward(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	outLen := n - c.k + 1
	y := mat.NewDense(outLen, c.out, nil)
	window := make([]float64, c.k*c.in)
	for p := 0; p < outLen; p++ {
		for t := 0; t < c.k; t++ {
			copy(window[t*c.in:(t+1)*c.in], x.RawRowView(p+t))
		}
		c.emit(window, y.RawRowView(p))
	}

	return y
}

// ForwardSame applies a zero-padded convolution preserving the input
// length: (K−1)/2 rows of padding on the left, K/2 on the right.
//
// Complexity: O(n·K·in·out).
func (c *Conv1d) ForwardSame(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	left := (c.k - 1) / 2
	y := mat.NewDense(n, c.out, nil)
	window := make([]float64, c.k*c.in)
	for p := 0; p < n; p++ {
		for t := 0; t < c.k; t++ {
			src := p + t - left
			dst := window[t*c.in : (t+1)*c.in]
			if src < 0 || src >= n {
				for i := range dst {
					dst[i] = 0
				}
				continue
			}
			copy(dst, x.RawRowView(src))
		}
		c.emit(window, y.RawRowView(p))
	}

	return y
}

// emit computes every output channel for one flattened window.
func (c *Conv1d) emit(window, dst []float64) {
	for o := 0; o < c.out; o++ {
		sum := c.B.AtVec(o)
		row := c.W.RawRowView(o)
		for i, v := range window {
			sum += row[i] * v
		}
		dst[o] = sum
	}
}
