// Package embed - direct linear projection strategy.
package embed

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// linearEmbedder projects each coordinate pair straight to Dim features.
type linearEmbedder struct {
	proj *nn.Linear
}

func newLinearEmbedder(cfg Config, rng *rand.Rand) (*linearEmbedder, error) {
	proj, err := nn.NewLinear(CoordDim, cfg.Dim, rng)
	if err != nil {
		return nil, err
	}

	return &linearEmbedder{proj: proj}, nil
}

func (e *linearEmbedder) Dim() int { return e.proj.Out() }

func (e *linearEmbedder) Embed(coords *mat.Dense) (*mat.Dense, error) {
	if _, err := validateCoords(coords); err != nil {
		return nil, err
	}

	return e.proj.Forward(coords), nil
}
