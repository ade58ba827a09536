// Package tsp — tour length evaluation.
//
// This file provides the single scoring primitive of the package: the
// total Euclidean length of a closed tour over an instance's
// coordinates. It is intentionally minimal and side-effect free.
//
// Design:
//   - Strict sentinels from types.go on any invalid input.
//   - Defensive checks (index range, NaN coordinates) even when the
//     caller validated earlier.
//   - Stable result: rounded to 1e-9 to avoid cross-platform FP noise.
//
// Complexity:
//   - O(n) time for a tour over n nodes, O(1) extra space.
package tsp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// roundScale controls final length stabilization precision (1e-9).
// Avoids tiny FP drifts across platforms/opt levels without affecting
// tour comparisons.
const roundScale = 1e9

// TourLength sums the Euclidean edge lengths along tour, closing the
// cycle from the last node back to the first.
//
// Contract:
//   - coords is n×2 with n ≥ 1; tour visits each of 0..n−1 exactly once
//     (see ValidateTour; only length and index range are re-checked
//     here).
//   - Returns ErrCoordShape, ErrTourLength, or ErrNotPermutation on
//     malformed input.
//
// Complexity: O(n).
func TourLength(coords *mat.Dense, tour []int) (float64, error) {
	n, err := validateInstance(coords)
	if err != nil {
		return 0, err
	}
	if len(tour) != n {
		return 0, ErrTourLength
	}

	var (
		sum  float64
		prev = tour[0]
	)
	if prev < 0 || prev >= n {
		return 0, ErrNotPermutation
	}
	for i := 1; i < n; i++ {
		cur := tour[i]
		if cur < 0 || cur >= n {
			return 0, ErrNotPermutation
		}
		sum += edge(coords, prev, cur)
		prev = cur
	}
	sum += edge(coords, prev, tour[0])

	if math.IsNaN(sum) {
		return 0, ErrCoordShape
	}

	return math.Round(sum*roundScale) / roundScale, nil
}

// edge returns the Euclidean distance between nodes u and v.
func edge(coords *mat.Dense, u, v int) float64 {
	dx := coords.At(v, 0) - coords.At(u, 0)
	dy := coords.At(v, 1) - coords.At(u, 1)

	return math.Sqrt(dx*dx + dy*dy)
}
