// Package tspnet - validation utilities.
//
// Staged validators in the usual order: configuration at construction,
// then per-call options, then runtime instance shapes. Deterministic,
// side-effect free, sentinel errors only.
package tspnet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/embed"
)

// validateConfig checks the architecture parameters that the model owns.
// Embedding-kind parameters (Neighbors/Kernel coupling, unknown kinds)
// are checked by embed.New during construction.
//
// Complexity: O(1).
func validateConfig(cfg Config) error {
	if cfg.DimEmb <= 0 {
		return fmt.Errorf("%w: DimEmb must be positive (%d)", ErrBadConfig, cfg.DimEmb)
	}
	if cfg.DimFF <= 0 {
		return fmt.Errorf("%w: DimFF must be positive (%d)", ErrBadConfig, cfg.DimFF)
	}
	if cfg.EncoderLayers < 1 {
		return fmt.Errorf("%w: EncoderLayers must be at least 1 (%d)", ErrBadConfig, cfg.EncoderLayers)
	}
	if cfg.DecoderLayers < 1 {
		return fmt.Errorf("%w: DecoderLayers must be at least 1 (%d)", ErrBadConfig, cfg.DecoderLayers)
	}
	if cfg.Heads < 1 {
		return fmt.Errorf("%w: Heads must be at least 1 (%d)", ErrBadConfig, cfg.Heads)
	}
	if cfg.DimEmb%cfg.Heads != 0 {
		return ErrHeadsDivideDim
	}
	if cfg.MaxLenPE < 2 {
		return fmt.Errorf("%w: MaxLenPE must be at least 2 (%d)", ErrBadConfig, cfg.MaxLenPE)
	}
	if cfg.SegmLen < 0 {
		return fmt.Errorf("%w: SegmLen must be non-negative (%d)", ErrBadConfig, cfg.SegmLen)
	}

	return nil
}

// validateDecodeOptions checks per-call mode consistency.
//
// Complexity: O(1).
func validateDecodeOptions(opts DecodeOptions) error {
	if !opts.Greedy && !opts.BeamSearch {
		return fmt.Errorf("%w: no decode mode selected", ErrOptionViolation)
	}
	if opts.Sample && !opts.Greedy {
		return fmt.Errorf("%w: Sample requires Greedy", ErrOptionViolation)
	}
	if opts.BeamSearch && opts.BeamWidth < 1 {
		return fmt.Errorf("%w: BeamWidth must be at least 1 (%d)", ErrOptionViolation, opts.BeamWidth)
	}

	return nil
}

// validateInstances checks that the batch is non-empty, every instance
// is n×2 for one shared n, and the PE table covers n+1 steps. Returns n.
//
// Complexity: O(bsz).
func (m *Net) validateInstances(instances []*mat.Dense) (int, error) {
	if len(instances) == 0 {
		return 0, ErrEmptyBatch
	}

	var n int
	for i, coords := range instances {
		if coords == nil {
			return 0, embed.ErrCoordShape
		}
		r, c := coords.Dims()
		if r < 1 || c != embed.CoordDim {
			return 0, embed.ErrCoordShape
		}
		if i == 0 {
			n = r
			continue
		}
		if r != n {
			return 0, fmt.Errorf("%w: instance 0 has %d nodes, instance %d has %d", ErrBatchMismatch, n, i, r)
		}
	}

	if n+1 > m.cfg.MaxLenPE {
		return 0, fmt.Errorf("%w: need %d rows, have %d", ErrPETooShort, n+1, m.cfg.MaxLenPE)
	}

	return n, nil
}
