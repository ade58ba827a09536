// Package tspnet - model assembly and the public decode surface.
package tspnet

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/attn"
	"github.com/cm8908/ScienceTouch-JibumKim-TSP/embed"
	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// Net is a transformer tour-construction model. Immutable after New and
// safe for concurrent Decode calls: every call owns its own session.
type Net struct {
	cfg      Config
	embedder embed.Embedder
	enc      *encoder
	dec      *decoderStack

	// start is the learned embedding of the synthetic start token,
	// appended to every instance at row index n.
	start []float64

	// wK/wV project the encoder context once into the concatenated
	// per-decoder-layer key/value blocks (width DecoderLayers·DimEmb).
	wK, wV *nn.Linear

	// pe is the read-only sinusoidal positional-encoding table.
	pe *mat.Dense
}

// New constructs a Net from cfg, drawing all parameters from cfg.Seed.
//
// Errors: ErrHeadsDivideDim, ErrBadConfig, and the embed sentinels for
// strategy misconfiguration.
func New(cfg Config) (*Net, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rng := rngFromSeed(cfg.Seed)
	embedder, err := embed.New(cfg.Embedding, embed.Config{
		Dim:       cfg.DimEmb,
		Neighbors: cfg.Neighbors,
		Kernel:    cfg.Kernel,
	}, rng)
	if err != nil {
		return nil, err
	}
	enc, err := newEncoder(cfg, rng)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoderStack(cfg, rng)
	if err != nil {
		return nil, err
	}

	start := make([]float64, cfg.DimEmb)
	for i := range start {
		start[i] = rng.NormFloat64()
	}

	wide := cfg.DecoderLayers * cfg.DimEmb
	wK, err := nn.NewLinear(cfg.DimEmb, wide, rng)
	if err != nil {
		return nil, err
	}
	wV, err := nn.NewLinear(cfg.DimEmb, wide, rng)
	if err != nil {
		return nil, err
	}

	return &Net{
		cfg:      cfg,
		embedder: embedder,
		enc:      enc,
		dec:      dec,
		start:    start,
		wK:       wK,
		wV:       wV,
		pe:       attn.Table(cfg.MaxLenPE, cfg.DimEmb),
	}, nil
}

// Config returns the configuration the Net was built with.
func (m *Net) Config() Config { return m.cfg }

// Encoded is the fixed encoder context of one instance batch: the
// per-node contextual embeddings and their per-decoder-layer key/value
// projections. Read-only for the duration of any number of decodes.
type Encoded struct {
	ctx   []*mat.Dense // (n+1)×dim per instance, row n = start token
	kAtt  []*mat.Dense // (n+1)×(layers·dim) per instance
	vAtt  []*mat.Dense
	attnW []*mat.Dense // last encoder layer's attention, diagnostic
	n     int
}

// Nodes reports the per-instance city count n.
func (e *Encoded) Nodes() int { return e.n }

// Batch reports the instance count.
func (e *Encoded) Batch() int { return len(e.ctx) }

// AttentionWeights returns the last encoder layer's (n+1)×(n+1)
// attention-weight matrices, one per instance. Diagnostic only; nothing
// downstream consumes them.
func (e *Encoded) AttentionWeights() []*mat.Dense { return e.attnW }

// Encode embeds and encodes a batch of n×2 instances once. The result
// can be decoded any number of times (and under both modes) without
// re-encoding.
//
// Errors: ErrEmptyBatch, ErrBatchMismatch, ErrPETooShort, and the embed
// sentinels for malformed coordinates.
//
// Complexity: O(L·bsz·(n+1)²·dim).
func (m *Net) Encode(instances []*mat.Dense) (*Encoded, error) {
	n, err := m.validateInstances(instances)
	if err != nil {
		return nil, err
	}

	// Embed each instance and append the start-token row at index n.
	batch := make([]*mat.Dense, len(instances))
	for i, coords := range instances {
		emb, err := m.embedder.Embed(coords)
		if err != nil {
			return nil, err
		}
		withStart := mat.NewDense(n+1, m.cfg.DimEmb, nil)
		for r := 0; r < n; r++ {
			copy(withStart.RawRowView(r), emb.RawRowView(r))
		}
		copy(withStart.RawRowView(n), m.start)
		batch[i] = withStart
	}

	ctx, attnW, err := m.enc.forward(batch)
	if err != nil {
		return nil, err
	}

	kAtt := make([]*mat.Dense, len(ctx))
	vAtt := make([]*mat.Dense, len(ctx))
	for i, h := range ctx {
		kAtt[i] = m.wK.Forward(h)
		vAtt[i] = m.wV.Forward(h)
	}

	return &Encoded{ctx: ctx, kAtt: kAtt, vAtt: vAtt, attnW: attnW, n: n}, nil
}

// Decode encodes the batch and runs the selected decoding modes over the
// shared context. Each selected mode gets its own session and mask
// state; the unselected mode's Result field stays nil.
//
// Complexity: encoder cost plus O(n·rows·layers·(n+dim)·dim) per mode,
// rows = bsz (greedy) or bsz·B (beam search).
func (m *Net) Decode(instances []*mat.Dense, opts DecodeOptions) (Result, error) {
	if err := validateDecodeOptions(opts); err != nil {
		return Result{}, err
	}
	enc, err := m.Encode(instances)
	if err != nil {
		return Result{}, err
	}

	return m.DecodeEncoded(enc, opts)
}

// DecodeEncoded is Decode over an already-encoded batch.
func (m *Net) DecodeEncoded(enc *Encoded, opts DecodeOptions) (Result, error) {
	if err := validateDecodeOptions(opts); err != nil {
		return Result{}, err
	}

	var (
		res Result
		err error
	)
	if opts.Greedy {
		if res.Greedy, err = m.rollout(enc, opts.Sample, opts.Seed); err != nil {
			return Result{}, err
		}
	}
	if opts.BeamSearch {
		if res.BeamSearch, err = m.beamSearch(enc, opts.BeamWidth); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// queryAt builds the step-t decode query for one row: the contextual
// embedding of node idx plus the positional encoding of step t.
func (m *Net) queryAt(enc *Encoded, b, idx, t int) *mat.VecDense {
	var (
		dim = m.cfg.DimEmb
		q   = mat.NewVecDense(dim, nil)
		src = enc.ctx[b].RawRowView(idx)
		pe  = m.pe.RawRowView(t)
	)
	for i := 0; i < dim; i++ {
		q.SetVec(i, src[i]+pe[i])
	}

	return q
}
