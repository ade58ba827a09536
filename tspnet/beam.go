// Package tspnet - batched beam search.
//
// Width schedule: step 0 expands the single start query into
// min(B, n) beams (an instance only has n first moves); step 1 scores
// every (beam, next-node) combination and keeps the global top B per
// instance; every later step repeats that combination-and-prune at
// fixed width. Scores accumulate as sums of log-probabilities, so a
// retained beam's score never increases across steps.
//
// Cache bookkeeping mirrors the width schedule exactly: the session
// caches are replicated (repeat) once after the step-0 expansion and
// gathered by surviving-parent index (reorder) after every later
// pruning — always after the step that pushed the current entries and
// always before the next step runs.
package tspnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// beamState is the bookkeeping of one instance's beam front.
type beamState struct {
	scores []float64 // cumulative log-probability per beam
	tours  [][]int   // partial tour per beam
	masks  [][]bool  // visited mask per beam, length n+1
}

// beamSearch decodes enc with the given configured width and returns
// beam 0 (the global best under descending top-k order) per instance.
//
// Complexity: O(n·bsz·B·(layers·(n+dim)·dim + n·log(B·n))).
func (m *Net) beamSearch(enc *Encoded, width int) (*Solution, error) {
	var (
		bsz   = enc.Batch()
		n     = enc.Nodes()
		sess  = m.dec.newSession(bsz)
		state = make([]*beamState, bsz)

		// Step 0 runs at the base batch width: one implicit beam.
		h      = make([]*mat.VecDense, bsz)
		masks  = make([][]bool, bsz)
		baseOf = make([]int, bsz)
	)
	for b := 0; b < bsz; b++ {
		h[b] = m.queryAt(enc, b, n, 0)
		masks[b] = make([]bool, n+1)
		masks[b][n] = true
		baseOf[b] = b
	}

	probs, err := m.dec.step(sess, h, enc.kAtt, enc.vAtt, baseOf, masks)
	if err != nil {
		return nil, err
	}

	// Step 0 expansion: top min(B, n) first moves per instance. The
	// clamp is silent; only one best tour per instance is reported at
	// the end, so callers never observe the transient width.
	curWidth := width
	if n < curWidth {
		curWidth = n
	}
	logp := make([]float64, n+1)
	for b := 0; b < bsz; b++ {
		for j, p := range probs[b] {
			logp[j] = math.Log(p)
		}
		top := topK(logp, curWidth)

		st := &beamState{
			scores: make([]float64, curWidth),
			tours:  make([][]int, curWidth),
			masks:  make([][]bool, curWidth),
		}
		for i, node := range top {
			st.scores[i] = logp[node]
			st.tours[i] = append(make([]int, 0, n), node)
			st.masks[i] = cloneMask(masks[b])
			st.masks[i][node] = true
		}
		state[b] = st
	}
	sess.repeat(curWidth)

	// Steps 1..n−1: combine, prune, reorder.
	for t := 1; t < n; t++ {
		var (
			rows = bsz * curWidth
			hh   = make([]*mat.VecDense, rows)
			mm   = make([][]bool, rows)
			bb   = make([]int, rows)
		)
		for b := 0; b < bsz; b++ {
			st := state[b]
			for i := 0; i < curWidth; i++ {
				r := b*curWidth + i
				hh[r] = m.queryAt(enc, b, st.tours[i][t-1], t)
				mm[r] = st.masks[i]
				bb[r] = b
			}
		}
		probs, err = m.dec.step(sess, hh, enc.kAtt, enc.vAtt, bb, mm)
		if err != nil {
			return nil, err
		}

		// Flattened (beam, node) score space per instance; unravel the
		// winning flat indices with integer division and remainder.
		nextWidth := width
		if flat := curWidth * (n + 1); flat < nextWidth {
			nextWidth = flat
		}
		perRow := make([][]int, bsz)
		for b := 0; b < bsz; b++ {
			st := state[b]
			flat := make([]float64, curWidth*(n+1))
			for i := 0; i < curWidth; i++ {
				row := probs[b*curWidth+i]
				for j := 0; j <= n; j++ {
					flat[i*(n+1)+j] = st.scores[i] + math.Log(row[j])
				}
			}
			top := topK(flat, nextWidth)

			next := &beamState{
				scores: make([]float64, nextWidth),
				tours:  make([][]int, nextWidth),
				masks:  make([][]bool, nextWidth),
			}
			parents := make([]int, nextWidth)
			for i, f := range top {
				parent := f / (n + 1)
				node := f % (n + 1)
				parents[i] = parent
				next.scores[i] = flat[f]
				next.tours[i] = append(append(make([]int, 0, n), st.tours[parent]...), node)
				next.masks[i] = cloneMask(st.masks[parent])
				next.masks[i][node] = true
			}
			state[b] = next
			perRow[b] = parents
		}

		// Gather the caches by parent before the next step touches them.
		sess.reorder(perRow)
		curWidth = nextWidth
	}

	sol := &Solution{
		Tours:  make([][]int, bsz),
		Scores: make([]float64, bsz),
	}
	for b := 0; b < bsz; b++ {
		sol.Tours[b] = state[b].tours[0]
		sol.Scores[b] = state[b].scores[0]
	}

	return sol, nil
}

// cloneMask copies a visited mask.
func cloneMask(mask []bool) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)

	return out
}
