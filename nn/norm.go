// Package nn - normalization layers.
//
// Two variants are provided, mirroring the two normalization policies a
// transformer encoder may be configured with:
//
//   - LayerNorm: per row, statistics over the feature axis.
//   - BatchNorm: per feature, statistics over every row of every
//     instance in the batch (the 1D-batch-norm view of a
//     (batch, features, positions) tensor).
//
// Both carry learned scale (gamma, init 1) and shift (beta, init 0).
package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// normEps keeps normalization denominators away from zero.
const normEps = 1e-5

// LayerNorm normalizes each row over its features.
type LayerNorm struct {
	Gamma *mat.VecDense
	Beta  *mat.VecDense

	dim int
}

// NewLayerNorm constructs a LayerNorm over dim features (gamma=1, beta=0).
func NewLayerNorm(dim int) (*LayerNorm, error) {
	if dim <= 0 {
		return nil, ErrBadDims
	}
	g := mat.NewVecDense(dim, nil)
	for i := 0; i < dim; i++ {
		g.SetVec(i, 1)
	}

	return &LayerNorm{Gamma: g, Beta: mat.NewVecDense(dim, nil), dim: dim}, nil
}

// Forward normalizes every row of x (n×dim) independently.
//
// Complexity: O(n·dim).
func (l *LayerNorm) Forward(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	y := mat.NewDense(n, l.dim, nil)
	for r := 0; r < n; r++ {
		l.normalizeRow(x.RawRowView(r), y.RawRowView(r))
	}

	return y
}

// ForwardVec normalizes a single vector of length dim.
func (l *LayerNorm) ForwardVec(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(l.dim, nil)
	l.normalizeRow(v.RawVector().Data, out.RawVector().Data)

	return out
}

// normalizeRow writes the normalized form of src into dst (same length).
func (l *LayerNorm) normalizeRow(src, dst []float64) {
	var mean float64
	for _, v := range src {
		mean += v
	}
	mean /= float64(l.dim)

	var variance float64
	for _, v := range src {
		d := v - mean
		variance += d * d
	}
	variance /= float64(l.dim)

	inv := 1.0 / math.Sqrt(variance+normEps)
	for i, v := range src {
		dst[i] = (v-mean)*inv*l.Gamma.AtVec(i) + l.Beta.AtVec(i)
	}
}

// BatchNorm normalizes each feature over all rows of a batch of
// instances. Statistics are always the current batch's (inference on a
// frozen model reuses whatever batch it is given, exactly like the
// reference policy run in training mode).
type BatchNorm struct {
	Gamma *mat.VecDense
	Beta  *mat.VecDense

	dim int
}

// NewBatchNorm constructs a BatchNorm over dim features (gamma=1, beta=0).
func NewBatchNorm(dim int) (*BatchNorm, error) {
	if dim <= 0 {
		return nil, ErrBadDims
	}
	g := mat.NewVecDense(dim, nil)
	for i := 0; i < dim; i++ {
		g.SetVec(i, 1)
	}

	return &BatchNorm{Gamma: g, Beta: mat.NewVecDense(dim, nil), dim: dim}, nil
}

// ForwardBatch normalizes each feature column across every row of every
// instance, returning per-instance results of the same shapes.
//
// Contract: all instances are ?×dim with at least one row in total.
//
// Complexity: O(totalRows·dim).
func (b *BatchNorm) ForwardBatch(batch []*mat.Dense) []*mat.Dense {
	mean := make([]float64, b.dim)
	variance := make([]float64, b.dim)

	var total int
	for _, x := range batch {
		n, _ := x.Dims()
		total += n
		for r := 0; r < n; r++ {
			row := x.RawRowView(r)
			for c, v := range row {
				mean[c] += v
			}
		}
	}
	for c := range mean {
		mean[c] /= float64(total)
	}
	for _, x := range batch {
		n, _ := x.Dims()
		for r := 0; r < n; r++ {
			row := x.RawRowView(r)
			for c, v := range row {
				d := v - mean[c]
				variance[c] += d * d
			}
		}
	}

	out := make([]*mat.Dense, len(batch))
	inv := make([]float64, b.dim)
	for c := range variance {
		variance[c] /= float64(total)
		inv[c] = 1.0 / math.Sqrt(variance[c]+normEps)
	}
	for i, x := range batch {
		n, _ := x.Dims()
		y := mat.NewDense(n, b.dim, nil)
		for r := 0; r < n; r++ {
			src := x.RawRowView(r)
			dst := y.RawRowView(r)
			for c, v := range src {
				dst[c] = (v-mean[c])*inv[c]*b.Gamma.AtVec(c) + b.Beta.AtVec(c)
			}
		}
		out[i] = y
	}

	return out
}
