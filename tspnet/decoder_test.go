package tspnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/embed"
)

// tinyConfig returns a small architecture that keeps decode-loop tests
// fast while still exercising multi-head, multi-layer paths.
func tinyConfig() Config {
	return Config{
		Embedding:     embed.Linear,
		DimEmb:        16,
		DimFF:         32,
		EncoderLayers: 2,
		DecoderLayers: 3,
		Heads:         4,
		MaxLenPE:      32,
		BatchNorm:     true,
		Seed:          11,
	}
}

// runManualRollout drives the decoder step by step the way the greedy
// rollout does, invoking check after every step.
func runManualRollout(t *testing.T, m *Net, bsz, n int, check func(t int, sess *session, probs [][]float64, masks [][]bool)) {
	t.Helper()

	instances := make([]*mat.Dense, bsz)
	for b := range instances {
		coords := mat.NewDense(n, 2, nil)
		for i := 0; i < n; i++ {
			coords.Set(i, 0, float64(b+1)*0.1+float64(i)*0.07)
			coords.Set(i, 1, float64(b+1)*0.05+float64(i)*0.11)
		}
		instances[b] = coords
	}
	enc, err := m.Encode(instances)
	require.NoError(t, err)

	sess := m.dec.newSession(bsz)
	h := make([]*mat.VecDense, bsz)
	masks := make([][]bool, bsz)
	baseOf := make([]int, bsz)
	for b := 0; b < bsz; b++ {
		h[b] = m.queryAt(enc, b, n, 0)
		masks[b] = make([]bool, n+1)
		masks[b][n] = true
		baseOf[b] = b
	}

	for step := 0; step < n; step++ {
		probs, err := m.dec.step(sess, h, enc.kAtt, enc.vAtt, baseOf, masks)
		require.NoError(t, err)
		check(step, sess, probs, masks)

		for b := 0; b < bsz; b++ {
			idx := floats.MaxIdx(probs[b])
			masks[b][idx] = true
			h[b] = m.queryAt(enc, b, idx, step+1)
		}
	}
}

func TestDecoderStep_CacheGrowsOnePerStep(t *testing.T) {
	m, err := New(tinyConfig())
	require.NoError(t, err)

	runManualRollout(t, m, 2, 6, func(step int, sess *session, _ [][]float64, _ [][]bool) {
		for l, c := range sess.caches {
			assert.Equal(t, step+1, c.Len(), "layer %d after step %d", l, step)
			assert.Equal(t, 2, c.Rows(), "layer %d", l)
		}
	})
}

func TestDecoderStep_SlidingWindowBoundsCache(t *testing.T) {
	cfg := tinyConfig()
	cfg.SegmLen = 3
	m, err := New(cfg)
	require.NoError(t, err)

	runManualRollout(t, m, 1, 8, func(step int, sess *session, _ [][]float64, _ [][]bool) {
		want := step + 1
		if want > 3 {
			want = 3
		}
		for l, c := range sess.caches {
			assert.Equal(t, want, c.Len(), "layer %d after step %d", l, step)
		}
	})
}

func TestDecoderStep_VisitedNodesGetZeroProbability(t *testing.T) {
	m, err := New(tinyConfig())
	require.NoError(t, err)

	const n = 6
	runManualRollout(t, m, 2, n, func(step int, _ *session, probs [][]float64, masks [][]bool) {
		for b, row := range probs {
			require.Len(t, row, n+1)
			var sum float64
			for j, p := range row {
				if masks[b][j] {
					assert.Zero(t, p, "step %d row %d node %d is visited", step, b, j)
				}
				sum += p
			}
			assert.InDelta(t, 1, sum, 1e-9, "step %d row %d", step, b)
		}
	})
}

func TestDecoderStep_CumulativeScoreNeverIncreases(t *testing.T) {
	// Each step adds log p ≤ 0, so the running score of a greedy path
	// is non-increasing.
	m, err := New(tinyConfig())
	require.NoError(t, err)

	score := 0.0
	prev := 0.0
	runManualRollout(t, m, 1, 7, func(step int, _ *session, probs [][]float64, _ [][]bool) {
		idx := floats.MaxIdx(probs[0])
		score += math.Log(probs[0][idx])
		assert.LessOrEqual(t, score, prev+1e-12, "after step %d", step)
		prev = score
	})
}

func TestDecoderStep_SessionsAreIndependent(t *testing.T) {
	// Two sessions over the same context must not see each other's
	// history: a fresh session starts at zero regardless of how far an
	// earlier one advanced.
	m, err := New(tinyConfig())
	require.NoError(t, err)

	runManualRollout(t, m, 1, 5, func(int, *session, [][]float64, [][]bool) {})

	fresh := m.dec.newSession(1)
	for l, c := range fresh.caches {
		assert.Zero(t, c.Len(), "layer %d", l)
		assert.Zero(t, c.Steps(), "layer %d", l)
	}
}

func TestDeriveSeed_StreamsSeparate(t *testing.T) {
	a := deriveSeed(1, samplingStream)
	b := deriveSeed(1, samplingStream+1)
	c := deriveSeed(2, samplingStream)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, deriveSeed(1, samplingStream), "derivation is pure")
}
