// Package tspnet - configuration surfaces.
//
// Config fixes the architecture at construction time; DecodeOptions
// select modes per call. Both follow the plain-struct + Default idiom:
// start from the default, overwrite what you need.
package tspnet

import "github.com/cm8908/ScienceTouch-JibumKim-TSP/embed"

// finalLayerClip is the tanh logit clip of the pointer head. The fixed
// value 10 is part of the policy, not a tunable.
const finalLayerClip = 10.0

// Config fixes a Net's architecture. Validated by New; see validate.go
// for the exact rules.
type Config struct {
	// Embedding selects the node-embedding strategy.
	Embedding embed.Kind

	// Neighbors is the k-NN window size for the neighbor-conv embedding
	// kinds; ignored by the others.
	Neighbors int

	// Kernel is the convolution kernel width for the conv embedding
	// kinds; ignored by Linear. For the neighbor-window kinds it must
	// equal Neighbors+1.
	Kernel int

	// DimEmb is the embedding width used throughout the model. Must be
	// divisible by Heads.
	DimEmb int

	// DimFF is the hidden width of the encoder feed-forward blocks.
	DimFF int

	// EncoderLayers is the number of encoder blocks (≥ 1).
	EncoderLayers int

	// DecoderLayers is the total decoder depth (≥ 1): DecoderLayers−1
	// cached multi-head layers plus the single-head pointer head.
	DecoderLayers int

	// Heads is the attention head count for all multi-head attention.
	Heads int

	// MaxLenPE is the precomputed positional-encoding table length; an
	// n-city decode needs n+1 rows.
	MaxLenPE int

	// SegmLen, when > 0, bounds the self-attention cache to a sliding
	// window of the most recent SegmLen steps. 0 keeps the full history.
	SegmLen int

	// BatchNorm selects per-feature batch normalization in the encoder;
	// false selects per-row layer normalization. The decoder always
	// layer-normalizes.
	BatchNorm bool

	// Seed drives parameter initialization. 0 uses the fixed default
	// seed; same seed ⇒ identical parameters.
	Seed uint64
}

// DefaultConfig returns the reference TSP50 architecture: linear
// embedding, 128-wide embeddings, 512-wide FFN, 6 encoder layers,
// 2 decoder layers, 8 heads, batch normalization, PE table of 1000.
func DefaultConfig() Config {
	return Config{
		Embedding:     embed.Linear,
		DimEmb:        128,
		DimFF:         512,
		EncoderLayers: 6,
		DecoderLayers: 2,
		Heads:         8,
		MaxLenPE:      1000,
		SegmLen:       0,
		BatchNorm:     true,
		Seed:          0,
	}
}

// DecodeOptions select the decoding modes for one Decode call.
type DecodeOptions struct {
	// Greedy enables the single-path rollout.
	Greedy bool

	// Sample switches the Greedy rollout from arg-max to seeded
	// categorical sampling. Requires Greedy.
	Sample bool

	// BeamSearch enables batched beam search.
	BeamSearch bool

	// BeamWidth is the beam count B for BeamSearch. At the first step
	// only min(B, n) beams exist (there are just n possible first
	// moves); the clamp is silent and the returned Solution always
	// reports exactly one best tour per batch row.
	BeamWidth int

	// Seed drives the sampling stream. 0 uses the fixed default seed.
	Seed uint64
}

// DefaultDecodeOptions returns a greedy-only configuration with a
// moderate beam width preset for callers that flip BeamSearch on.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Greedy:    true,
		BeamWidth: 100,
	}
}
