// Package embed - k-nearest-neighbor convolution strategies.
//
// Conv runs one valid convolution over each node's neighbor window and
// adds a linear skip of the raw coordinate:
//
//	h_i = W1·x_i + W2·conv(window_i)
//
// ConvXY computes the window convolution twice, on copies of the window
// sorted by x and by y coordinate, and sums the two before the W2 map.
// The kernel spans the whole window (kernel == neighbors+1), so each
// convolution emits exactly one vector per node.
package embed

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/nn"
)

// convEmbedder implements the Conv and ConvXY kinds.
type convEmbedder struct {
	neighbors int
	sortXY    bool

	convA *nn.Conv1d // window conv; x-sorted window when sortXY
	convB *nn.Conv1d // y-sorted window conv; nil unless sortXY
	skip  *nn.Linear // W1, raw coordinate skip
	mix   *nn.Linear // W2, applied to the convolved feature
}

func newConvEmbedder(cfg Config, rng *rand.Rand, sortXY bool) (*convEmbedder, error) {
	if cfg.Neighbors <= 0 || cfg.Kernel <= 0 {
		return nil, ErrBadConfig
	}
	if cfg.Kernel != cfg.Neighbors+1 {
		return nil, ErrKernelWindow
	}

	convA, err := nn.NewConv1d(CoordDim, cfg.Dim, cfg.Kernel, rng)
	if err != nil {
		return nil, err
	}
	var convB *nn.Conv1d
	if sortXY {
		if convB, err = nn.NewConv1d(CoordDim, cfg.Dim, cfg.Kernel, rng); err != nil {
			return nil, err
		}
	}
	skip, err := nn.NewLinear(CoordDim, cfg.Dim, rng)
	if err != nil {
		return nil, err
	}
	mix, err := nn.NewLinear(cfg.Dim, cfg.Dim, rng)
	if err != nil {
		return nil, err
	}

	return &convEmbedder{
		neighbors: cfg.Neighbors,
		sortXY:    sortXY,
		convA:     convA,
		convB:     convB,
		skip:      skip,
		mix:       mix,
	}, nil
}

func (e *convEmbedder) Dim() int { return e.skip.Out() }

func (e *convEmbedder) Embed(coords *mat.Dense) (*mat.Dense, error) {
	n, err := validateCoords(coords)
	if err != nil {
		return nil, err
	}
	if n < e.neighbors+1 {
		return nil, ErrTooFewNodes
	}

	var (
		dim      = e.Dim()
		windows  = nearestWindows(coords, e.neighbors)
		convOut  = mat.NewDense(n, dim, nil)
		window   = mat.NewDense(e.neighbors+1, CoordDim, nil)
		windowY  *mat.Dense
		convRowY []float64
	)
	if e.sortXY {
		windowY = mat.NewDense(e.neighbors+1, CoordDim, nil)
	}

	for i := 0; i < n; i++ {
		window = gatherWindow(coords, windows[i], window)
		if e.sortXY {
			windowY.Copy(window)
			sortWindowByAxis(window, 0)
			sortWindowByAxis(windowY, 1)
		}

		// Kernel spans the window, so the valid conv is a single row.
		convRow := e.convA.Forward(window).RawRowView(0)
		if e.sortXY {
			convRowY = e.convB.Forward(windowY).RawRowView(0)
			for c := range convRow {
				convRow[c] += convRowY[c]
			}
		}
		copy(convOut.RawRowView(i), convRow)
	}

	out := e.skip.Forward(coords)
	out.Add(out, e.mix.Forward(convOut))

	return out, nil
}
