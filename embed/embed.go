// Package embed - strategy selection.
package embed

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Embedder turns an n×2 coordinate matrix into an n×Dim embedding
// matrix, one row per node, order-preserving.
type Embedder interface {
	// Embed computes the per-node embeddings.
	//
	// Contract: coords is n×2 with n ≥ 1 (window kinds additionally
	// require n ≥ Neighbors+1). Errors: ErrCoordShape, ErrTooFewNodes.
	Embed(coords *mat.Dense) (*mat.Dense, error)

	// Dim reports the embedding width.
	Dim() int
}

// New constructs the Embedder selected by kind, drawing every parameter
// from rng.
//
// Errors: ErrUnknownKind, ErrBadConfig, ErrKernelWindow, nn.ErrNilRand.
func New(kind Kind, cfg Config, rng *rand.Rand) (Embedder, error) {
	if cfg.Dim <= 0 {
		return nil, ErrBadConfig
	}

	switch kind {
	case Linear:
		return newLinearEmbedder(cfg, rng)
	case Conv:
		return newConvEmbedder(cfg, rng, false)
	case ConvXY:
		return newConvEmbedder(cfg, rng, true)
	case ConvSamePadding:
		return newSamePaddingEmbedder(cfg, rng, false)
	case ConvLinear:
		return newSamePaddingEmbedder(cfg, rng, true)
	default:
		return nil, ErrUnknownKind
	}
}

// validateCoords performs the shape checks shared by every strategy.
func validateCoords(coords *mat.Dense) (int, error) {
	if coords == nil {
		return 0, ErrCoordShape
	}
	n, c := coords.Dims()
	if n < 1 || c != CoordDim {
		return 0, ErrCoordShape
	}

	return n, nil
}
