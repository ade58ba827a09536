// Package tspnet - self-attention encoder stack.
//
// The encoder sees the full static node set (embedded cities plus the
// learned start token) with no masking: every block is full multi-head
// self-attention, residual add, normalization, position-wise
// feed-forward (linear → ReLU → linear), residual add, normalization.
// The normalization kind — per-feature over the whole batch, or per-row
// — is fixed at construction and applied consistently across layers.
package tspnet

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/attn"
	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// encNorm applies the configured normalization across a batch of
// per-instance matrices.
type encNorm struct {
	ln *nn.LayerNorm // nil when batch-normalizing
	bn *nn.BatchNorm // nil when layer-normalizing
}

func newEncNorm(dim int, batchNorm bool) (encNorm, error) {
	if batchNorm {
		bn, err := nn.NewBatchNorm(dim)
		return encNorm{bn: bn}, err
	}
	ln, err := nn.NewLayerNorm(dim)

	return encNorm{ln: ln}, err
}

func (e encNorm) apply(batch []*mat.Dense) []*mat.Dense {
	if e.bn != nil {
		return e.bn.ForwardBatch(batch)
	}
	out := make([]*mat.Dense, len(batch))
	for i, x := range batch {
		out[i] = e.ln.Forward(x)
	}

	return out
}

// encoderLayer is one self-attention + feed-forward block.
type encoderLayer struct {
	wq, wk, wv, wo *nn.Linear
	ff1, ff2       *nn.Linear
	norm1, norm2   encNorm
}

func newEncoderLayer(cfg Config, rng *rand.Rand) (*encoderLayer, error) {
	var (
		l   = &encoderLayer{}
		err error
	)
	if l.wq, err = nn.NewLinear(cfg.DimEmb, cfg.DimEmb, rng); err != nil {
		return nil, err
	}
	if l.wk, err = nn.NewLinear(cfg.DimEmb, cfg.DimEmb, rng); err != nil {
		return nil, err
	}
	if l.wv, err = nn.NewLinear(cfg.DimEmb, cfg.DimEmb, rng); err != nil {
		return nil, err
	}
	if l.wo, err = nn.NewLinear(cfg.DimEmb, cfg.DimEmb, rng); err != nil {
		return nil, err
	}
	if l.ff1, err = nn.NewLinear(cfg.DimEmb, cfg.DimFF, rng); err != nil {
		return nil, err
	}
	if l.ff2, err = nn.NewLinear(cfg.DimFF, cfg.DimEmb, rng); err != nil {
		return nil, err
	}
	if l.norm1, err = newEncNorm(cfg.DimEmb, cfg.BatchNorm); err != nil {
		return nil, err
	}
	if l.norm2, err = newEncNorm(cfg.DimEmb, cfg.BatchNorm); err != nil {
		return nil, err
	}

	return l, nil
}

// encoder is the stack of L blocks.
type encoder struct {
	layers []*encoderLayer
	heads  int
}

func newEncoder(cfg Config, rng *rand.Rand) (*encoder, error) {
	layers := make([]*encoderLayer, cfg.EncoderLayers)
	for i := range layers {
		l, err := newEncoderLayer(cfg, rng)
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}

	return &encoder{layers: layers, heads: cfg.Heads}, nil
}

// forward encodes a batch of (n+1)×dim embedding matrices into
// contextual embeddings of the same shape, also returning the last
// layer's attention-weight matrices (diagnostic only).
//
// Complexity: O(L·bsz·(n+1)²·dim).
func (e *encoder) forward(batch []*mat.Dense) ([]*mat.Dense, []*mat.Dense, error) {
	var (
		h     = batch
		lastW = make([]*mat.Dense, len(batch))
		err   error
	)
	for li, layer := range e.layers {
		// Self-attention sublayer with residual, then batch-wide norm.
		attended := make([]*mat.Dense, len(h))
		for i, x := range h {
			var out, w *mat.Dense
			q := layer.wq.Forward(x)
			k := layer.wk.Forward(x)
			v := layer.wv.Forward(x)
			if out, w, err = attn.Heads(q, k, v, e.heads, nil, attn.NoClip); err != nil {
				return nil, nil, err
			}
			res := layer.wo.Forward(out)
			res.Add(res, x)
			attended[i] = res
			if li == len(e.layers)-1 {
				lastW[i] = w
			}
		}
		h = layer.norm1.apply(attended)

		// Feed-forward sublayer with residual, then batch-wide norm.
		fed := make([]*mat.Dense, len(h))
		for i, x := range h {
			hidden := layer.ff1.Forward(x)
			reluInPlace(hidden)
			res := layer.ff2.Forward(hidden)
			res.Add(res, x)
			fed[i] = res
		}
		h = layer.norm2.apply(fed)
	}

	return h, lastW, nil
}

// reluInPlace clamps every entry of m at zero.
func reluInPlace(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		for j, v := range row {
			if v < 0 {
				row[j] = 0
			}
		}
	}
}
