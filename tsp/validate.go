// Package tsp - validation utilities shared by the evaluator and the
// solver's tests.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from
//     types.go.
//   - O(n) worst-case; one O(n) scratch allocation in ValidateTour.
package tsp

import "gonum.org/v1/gonum/mat"

// ValidateTour checks that tour is a permutation of 0..n−1 for an
// n-node instance: every index present, none repeated.
//
// Returns ErrTourLength or ErrNotPermutation.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(n int, tour []int) error {
	if len(tour) != n {
		return ErrTourLength
	}

	seen := make([]bool, n)
	for _, v := range tour {
		if v < 0 || v >= n || seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}

	return nil
}

// validateInstance checks the coordinate matrix shape and returns the
// node count.
//
// Complexity: O(1).
func validateInstance(coords *mat.Dense) (int, error) {
	if coords == nil {
		return 0, ErrCoordShape
	}
	n, c := coords.Dims()
	if n < 1 || c != 2 {
		return 0, ErrCoordShape
	}

	return n, nil
}
