package nn

import "errors"

// Sentinel errors for layer construction.
var (
	// ErrBadDims is returned when a constructor receives a non-positive
	// input, output, or kernel dimension.
	ErrBadDims = errors.New("nn: layer dimensions must be positive")

	// ErrNilRand is returned when a constructor that initializes
	// parameters receives a nil random source.
	ErrNilRand = errors.New("nn: nil random source")
)
