// Package tspnet - autoregressive decoder stack.
//
// The stack chains DecoderLayers−1 cached multi-head layers and one
// single-head pointer head. Every intermediate layer, per step and per
// active beam-batch row:
//
//  1. projects the query into self-attention query/key/value, appends
//     the new key/value to its session cache, and attends the query
//     over the (possibly window-truncated) cache;
//  2. residual-adds, layer-normalizes, then cross-attends against its
//     own column block of the fixed encoder key/value projection with
//     the visited mask applied;
//  3. residual-adds, layer-normalizes, applies a two-layer
//     feed-forward block, residual-adds and layer-normalizes again.
//
// The pointer head projects the final query once more and returns its
// clipped (tanh·10), masked, softmaxed single-head attention weights as
// the next-node probability distribution — there is no separate output
// projection. Decoder normalization is always per-row layer norm,
// independent of the encoder's configured kind.
package tspnet

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/attn"
	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// decoderLayer is one cached multi-head decoder layer.
type decoderLayer struct {
	wqSelf, wkSelf, wvSelf, woSelf *nn.Linear
	wqCross, woCross               *nn.Linear
	ff1, ff2                       *nn.Linear
	lnSelf, lnCross, lnFF          *nn.LayerNorm
}

func newDecoderLayer(cfg Config, rng *rand.Rand) (*decoderLayer, error) {
	var (
		l   = &decoderLayer{}
		d   = cfg.DimEmb
		err error
	)
	for _, p := range []struct {
		dst     **nn.Linear
		in, out int
	}{
		{&l.wqSelf, d, d}, {&l.wkSelf, d, d}, {&l.wvSelf, d, d}, {&l.woSelf, d, d},
		{&l.wqCross, d, d}, {&l.woCross, d, d},
		{&l.ff1, d, d}, {&l.ff2, d, d},
	} {
		if *p.dst, err = nn.NewLinear(p.in, p.out, rng); err != nil {
			return nil, err
		}
	}
	if l.lnSelf, err = nn.NewLayerNorm(d); err != nil {
		return nil, err
	}
	if l.lnCross, err = nn.NewLayerNorm(d); err != nil {
		return nil, err
	}
	if l.lnFF, err = nn.NewLayerNorm(d); err != nil {
		return nil, err
	}

	return l, nil
}

// decoderStack chains the intermediate layers and the pointer head.
type decoderStack struct {
	layers  []*decoderLayer // DecoderLayers−1 entries
	wqFinal *nn.Linear

	dim    int
	heads  int
	window int // self-attention sliding window; 0 = unbounded
}

func newDecoderStack(cfg Config, rng *rand.Rand) (*decoderStack, error) {
	layers := make([]*decoderLayer, cfg.DecoderLayers-1)
	for i := range layers {
		l, err := newDecoderLayer(cfg, rng)
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}
	wqFinal, err := nn.NewLinear(cfg.DimEmb, cfg.DimEmb, rng)
	if err != nil {
		return nil, err
	}

	return &decoderStack{
		layers:  layers,
		wqFinal: wqFinal,
		dim:     cfg.DimEmb,
		heads:   cfg.Heads,
		window:  cfg.SegmLen,
	}, nil
}

// session owns the mutable per-decode state of the stack: one cache per
// intermediate layer. Constructing a session is the cache reset; a
// session must never be shared across concurrent decode calls.
type session struct {
	caches []*kvCache
}

// newSession begins a decode run over the given beam-batch rows.
func (d *decoderStack) newSession(rows int) *session {
	caches := make([]*kvCache, len(d.layers))
	for i := range caches {
		caches[i] = newKVCache(rows, d.dim, d.window)
	}

	return &session{caches: caches}
}

// repeat widens every layer cache from the base batch to batch×width.
func (s *session) repeat(width int) {
	for _, c := range s.caches {
		c.repeat(width)
	}
}

// reorder gathers every layer cache by the surviving-beam indices.
func (s *session) reorder(perRow [][]int) {
	for _, c := range s.caches {
		c.reorder(perRow)
	}
}

// step advances every active row one decoding step and returns the
// next-node distribution per row (length n+1 each).
//
// Contract:
//   - h holds one dim-wide query per beam-batch row; it is consumed.
//   - kAtt/vAtt are the per-base-instance (n+1)×(layers·dim) encoder
//     projections; baseOf maps a beam-batch row to its base instance.
//   - masks[r][j]==true hides node j from row r's cross-attention.
//   - The session caches must be at the width of h (repeat/reorder
//     before widening or pruning, never after the next step).
//
// Complexity: O(rows·layers·(t+n)·dim) for cache length t.
func (d *decoderStack) step(sess *session, h []*mat.VecDense, kAtt, vAtt []*mat.Dense, baseOf []int, masks [][]bool) ([][]float64, error) {
	rows := len(h)
	cur := h

	for li, layer := range d.layers {
		// Project self-attention q/k/v for all rows, then push the new
		// keys/values as this step's cache entry before attending.
		var (
			qs = make([]*mat.VecDense, rows)
			ks = make([][]float64, rows)
			vs = make([][]float64, rows)
		)
		for r, ht := range cur {
			qs[r] = layer.wqSelf.ForwardVec(ht)
			ks[r] = layer.wkSelf.ForwardVec(ht).RawVector().Data
			vs[r] = layer.wvSelf.ForwardVec(ht).RawVector().Data
		}
		cache := sess.caches[li]
		cache.push(ks, vs)

		next := make([]*mat.VecDense, rows)
		for r, ht := range cur {
			kc, vc := cache.matrices(r)
			selfOut, _, err := attn.Single(qs[r], kc, vc, d.heads, nil, attn.NoClip)
			if err != nil {
				return nil, err
			}
			ht = addVec(ht, layer.woSelf.ForwardVec(selfOut))
			ht = layer.lnSelf.ForwardVec(ht)

			kb, vb := layerBlock(kAtt[baseOf[r]], li, d.dim), layerBlock(vAtt[baseOf[r]], li, d.dim)
			crossOut, _, err := attn.Single(layer.wqCross.ForwardVec(ht), kb, vb, d.heads, masks[r], attn.NoClip)
			if err != nil {
				return nil, err
			}
			ht = addVec(ht, layer.woCross.ForwardVec(crossOut))
			ht = layer.lnCross.ForwardVec(ht)

			hidden := layer.ff1.ForwardVec(ht)
			reluVecInPlace(hidden)
			ht = addVec(ht, layer.ff2.ForwardVec(hidden))
			next[r] = layer.lnFF.ForwardVec(ht)
		}
		cur = next
	}

	// Pointer head: the clipped, masked single-head attention weights
	// over the last key/value block are the output distribution.
	var (
		last  = len(d.layers)
		probs = make([][]float64, rows)
	)
	for r, ht := range cur {
		kb, vb := layerBlock(kAtt[baseOf[r]], last, d.dim), layerBlock(vAtt[baseOf[r]], last, d.dim)
		_, w, err := attn.Single(d.wqFinal.ForwardVec(ht), kb, vb, 1, masks[r], finalLayerClip)
		if err != nil {
			return nil, err
		}
		probs[r] = w
	}

	return probs, nil
}

// layerBlock views columns [l·dim, (l+1)·dim) of the concatenated
// per-layer key/value projection.
func layerBlock(m *mat.Dense, l, dim int) *mat.Dense {
	r, _ := m.Dims()

	return m.Slice(0, r, l*dim, (l+1)*dim).(*mat.Dense)
}

// addVec returns a+b without touching either operand.
func addVec(a, b *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(a.Len(), nil)
	out.AddVec(a, b)

	return out
}

// reluVecInPlace clamps every entry of v at zero.
func reluVecInPlace(v *mat.VecDense) {
	data := v.RawVector().Data
	for i, x := range data {
		if x < 0 {
			data[i] = 0
		}
	}
}
