// Package nn_test exercises the layer primitives via the public API.
// Focus: exact arithmetic on hand-set parameters, shape contracts,
// deterministic initialization, and constructor validation.
package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// newRNG returns a fixed-seed generator so parameter draws are stable
// within a test.
func newRNG() *rand.Rand { return rand.New(rand.NewSource(42)) }

// -----------------------------------------------------------------------------
// Linear
// -----------------------------------------------------------------------------

func TestLinear_ForwardMatchesHandComputation(t *testing.T) {
	lin, err := nn.NewLinear(2, 3, newRNG())
	require.NoError(t, err)

	// Overwrite the random init with known parameters.
	lin.W = mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	lin.B = mat.NewVecDense(3, []float64{0.5, -0.5, 0})

	x := mat.NewDense(2, 2, []float64{
		2, 3,
		-1, 4,
	})
	y := lin.Forward(x)

	r, c := y.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	assert.Equal(t, 2.5, y.At(0, 0))
	assert.Equal(t, 2.5, y.At(0, 1))
	assert.Equal(t, 5.0, y.At(0, 2))
	assert.Equal(t, -0.5, y.At(1, 0))
	assert.Equal(t, 3.5, y.At(1, 1))
	assert.Equal(t, 3.0, y.At(1, 2))
}

func TestLinear_ForwardVecAgreesWithForward(t *testing.T) {
	lin, err := nn.NewLinear(4, 5, newRNG())
	require.NoError(t, err)

	v := mat.NewVecDense(4, []float64{0.1, -0.2, 0.3, -0.4})
	x := mat.NewDense(1, 4, []float64{0.1, -0.2, 0.3, -0.4})

	yv := lin.ForwardVec(v)
	ym := lin.Forward(x)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, ym.At(0, i), yv.AtVec(i), 1e-12)
	}
}

func TestLinear_DeterministicInit(t *testing.T) {
	a, err := nn.NewLinear(6, 7, newRNG())
	require.NoError(t, err)
	b, err := nn.NewLinear(6, 7, newRNG())
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.W, b.W), "same seed must give identical weights")
	assert.True(t, mat.Equal(a.B, b.B), "same seed must give identical bias")
}

func TestLinear_ConstructorValidation(t *testing.T) {
	_, err := nn.NewLinear(0, 3, newRNG())
	assert.ErrorIs(t, err, nn.ErrBadDims)
	_, err = nn.NewLinear(3, -1, newRNG())
	assert.ErrorIs(t, err, nn.ErrBadDims)
	_, err = nn.NewLinear(3, 3, nil)
	assert.ErrorIs(t, err, nn.ErrNilRand)
}

// -----------------------------------------------------------------------------
// LayerNorm
// -----------------------------------------------------------------------------

func TestLayerNorm_RowsComeOutStandardized(t *testing.T) {
	ln, err := nn.NewLayerNorm(4)
	require.NoError(t, err)

	x := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		-10, 0, 10, 20,
	})
	y := ln.Forward(x)

	for r := 0; r < 2; r++ {
		var mean, variance float64
		for c := 0; c < 4; c++ {
			mean += y.At(r, c)
		}
		mean /= 4
		for c := 0; c < 4; c++ {
			d := y.At(r, c) - mean
			variance += d * d
		}
		variance /= 4
		assert.InDelta(t, 0, mean, 1e-9, "row %d mean", r)
		assert.InDelta(t, 1, variance, 1e-3, "row %d variance", r)
	}
}

func TestLayerNorm_GammaBetaApplied(t *testing.T) {
	ln, err := nn.NewLayerNorm(2)
	require.NoError(t, err)
	ln.Gamma = mat.NewVecDense(2, []float64{2, 2})
	ln.Beta = mat.NewVecDense(2, []float64{1, 1})

	y := ln.ForwardVec(mat.NewVecDense(2, []float64{-1, 1}))

	// Standardized (-1,1) stays (-1,1) up to eps, then ×2 +1.
	assert.InDelta(t, -1, y.AtVec(0), 1e-4)
	assert.InDelta(t, 3, y.AtVec(1), 1e-4)
}

// -----------------------------------------------------------------------------
// BatchNorm
// -----------------------------------------------------------------------------

func TestBatchNorm_FeatureColumnsStandardizedAcrossBatch(t *testing.T) {
	bn, err := nn.NewBatchNorm(2)
	require.NoError(t, err)

	batch := []*mat.Dense{
		mat.NewDense(2, 2, []float64{1, 100, 2, 200}),
		mat.NewDense(2, 2, []float64{3, 300, 4, 400}),
	}
	out := bn.ForwardBatch(batch)
	require.Len(t, out, 2)

	// Collect each feature over all rows of all instances.
	for c := 0; c < 2; c++ {
		var vals []float64
		for _, y := range out {
			vals = append(vals, y.At(0, c), y.At(1, c))
		}
		var mean float64
		for _, v := range vals {
			mean += v
		}
		mean /= float64(len(vals))
		var variance float64
		for _, v := range vals {
			d := v - mean
			variance += d * d
		}
		variance /= float64(len(vals))
		assert.InDelta(t, 0, mean, 1e-9, "feature %d mean", c)
		assert.InDelta(t, 1, variance, 1e-3, "feature %d variance", c)
	}
}

// -----------------------------------------------------------------------------
// Conv1d
// -----------------------------------------------------------------------------

func TestConv1d_ValidMatchesHandComputation(t *testing.T) {
	conv, err := nn.NewConv1d(1, 1, 2, newRNG())
	require.NoError(t, err)

	// Kernel (1, -1) with bias 0 computes a forward difference.
	conv.W = mat.NewDense(1, 2, []float64{1, -1})
	conv.B = mat.NewVecDense(1, []float64{0})

	x := mat.NewDense(4, 1, []float64{1, 3, 6, 10})
	y := conv.Forward(x)

	r, c := y.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)
	assert.Equal(t, -2.0, y.At(0, 0))
	assert.Equal(t, -3.0, y.At(1, 0))
	assert.Equal(t, -4.0, y.At(2, 0))
}

func TestConv1d_SamePreservesLengthAndZeroPads(t *testing.T) {
	conv, err := nn.NewConv1d(1, 1, 3, newRNG())
	require.NoError(t, err)
	conv.W = mat.NewDense(1, 3, []float64{1, 1, 1}) // window sum
	conv.B = mat.NewVecDense(1, []float64{0})

	x := mat.NewDense(3, 1, []float64{1, 2, 4})
	y := conv.ForwardSame(x)

	r, _ := y.Dims()
	require.Equal(t, 3, r)
	assert.Equal(t, 3.0, y.At(0, 0), "left edge padded with zero")
	assert.Equal(t, 7.0, y.At(1, 0))
	assert.Equal(t, 6.0, y.At(2, 0), "right edge padded with zero")
}

func TestConv1d_ConstructorValidation(t *testing.T) {
	_, err := nn.NewConv1d(0, 1, 1, newRNG())
	assert.ErrorIs(t, err, nn.ErrBadDims)
	_, err = nn.NewConv1d(1, 1, 0, newRNG())
	assert.ErrorIs(t, err, nn.ErrBadDims)
	_, err = nn.NewConv1d(1, 1, 1, nil)
	assert.ErrorIs(t, err, nn.ErrNilRand)
}
