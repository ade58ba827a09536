// Package embed - deterministic k-nearest-neighbor windows.
//
// The window for node i holds the k+1 nodes nearest to i by Euclidean
// distance, node i itself included (distance zero). Window rows are
// ordered farthest-first, self last, matching the reference windowing;
// equal distances break ties by ascending node index so the windows are
// reproducible across platforms.
package embed

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// nearestWindows returns, for each of the n nodes, the indices of its
// k+1 nearest nodes (self included), ordered by decreasing distance.
//
// Contract: coords is n×2 with n ≥ k+1.
//
// Complexity: O(n²·log n) time, O(n²) space.
func nearestWindows(coords *mat.Dense, k int) [][]int {
	n, _ := coords.Dims()
	windows := make([][]int, n)
	order := make([]int, n)
	dist := make([]float64, n)

	for i := 0; i < n; i++ {
		xi, yi := coords.At(i, 0), coords.At(i, 1)
		for j := 0; j < n; j++ {
			dx := coords.At(j, 0) - xi
			dy := coords.At(j, 1) - yi
			dist[j] = math.Sqrt(dx*dx + dy*dy)
			order[j] = j
		}
		sort.Slice(order, func(a, b int) bool {
			if dist[order[a]] != dist[order[b]] {
				return dist[order[a]] < dist[order[b]]
			}
			return order[a] < order[b]
		})

		// Keep the k+1 nearest, then flip so the farthest leads and the
		// node itself closes the window.
		win := make([]int, k+1)
		for t := 0; t <= k; t++ {
			win[t] = order[k-t]
		}
		windows[i] = win
	}

	return windows
}

// gatherWindow copies the coordinate rows of idx into an len(idx)×2
// matrix, reusing dst when it has the right shape.
func gatherWindow(coords *mat.Dense, idx []int, dst *mat.Dense) *mat.Dense {
	if dst == nil {
		dst = mat.NewDense(len(idx), CoordDim, nil)
	}
	for t, j := range idx {
		dst.Set(t, 0, coords.At(j, 0))
		dst.Set(t, 1, coords.At(j, 1))
	}

	return dst
}

// sortWindowByAxis reorders window rows in place by ascending value on
// the given axis (0 = x, 1 = y), ties preserved in current order.
func sortWindowByAxis(window *mat.Dense, axis int) {
	n, _ := window.Dims()
	rows := make([][2]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = [2]float64{window.At(i, 0), window.At(i, 1)}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a][axis] < rows[b][axis] })
	for i := 0; i < n; i++ {
		window.Set(i, 0, rows[i][0])
		window.Set(i, 1, rows[i][1])
	}
}
