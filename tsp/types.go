package tsp

import "errors"

// Sentinel errors for tour and instance validation.
var (
	// ErrCoordShape is returned when an instance is nil or not n×2 with
	// n ≥ 1.
	ErrCoordShape = errors.New("tsp: coordinates must be n×2")

	// ErrTourLength is returned when a tour's length differs from the
	// instance's node count.
	ErrTourLength = errors.New("tsp: tour length differs from node count")

	// ErrNotPermutation is returned when a tour repeats or omits a node
	// index.
	ErrNotPermutation = errors.New("tsp: tour is not a permutation of node indices")

	// ErrBadInstanceSpec is returned when an instance generator receives
	// a non-positive batch size or node count.
	ErrBadInstanceSpec = errors.New("tsp: batch size and node count must be positive")
)
