// Package tspnet - deterministic top-k selection.
package tspnet

import "sort"

// topK returns the indices of the k largest values, in descending value
// order. Ties resolve to the lower index first, so the selection is
// deterministic across platforms and re-runs (the ordering is not
// semantically significant, only reproducibility is).
//
// Contract: 1 ≤ k ≤ len(vals).
//
// Complexity: O(n·log n) time, O(n) space.
func topK(vals []float64, k int) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if vals[idx[a]] != vals[idx[b]] {
			return vals[idx[a]] > vals[idx[b]]
		}
		return idx[a] < idx[b]
	})

	return idx[:k]
}
