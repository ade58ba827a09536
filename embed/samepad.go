// Package embed - same-padding convolution strategies.
//
// ConvSamePadding convolves the node sequence directly with zero
// padding, one output row per node. ConvLinear adds a linear skip of
// the raw coordinates on top.
package embed

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// samePaddingEmbedder implements the ConvSamePadding and ConvLinear kinds.
type samePaddingEmbedder struct {
	conv *nn.Conv1d
	skip *nn.Linear // nil for plain ConvSamePadding
	dim  int
}

func newSamePaddingEmbedder(cfg Config, rng *rand.Rand, withSkip bool) (*samePaddingEmbedder, error) {
	if cfg.Kernel <= 0 {
		return nil, ErrBadConfig
	}

	conv, err := nn.NewConv1d(CoordDim, cfg.Dim, cfg.Kernel, rng)
	if err != nil {
		return nil, err
	}
	var skip *nn.Linear
	if withSkip {
		if skip, err = nn.NewLinear(CoordDim, cfg.Dim, rng); err != nil {
			return nil, err
		}
	}

	return &samePaddingEmbedder{conv: conv, skip: skip, dim: cfg.Dim}, nil
}

func (e *samePaddingEmbedder) Dim() int { return e.dim }

func (e *samePaddingEmbedder) Embed(coords *mat.Dense) (*mat.Dense, error) {
	if _, err := validateCoords(coords); err != nil {
		return nil, err
	}

	out := e.conv.ForwardSame(coords)
	if e.skip != nil {
		out.Add(out, e.skip.Forward(coords))
	}

	return out, nil
}
