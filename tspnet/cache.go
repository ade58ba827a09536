// Package tspnet - incremental self-attention key/value cache.

package tspnet

import "gonum.org/v1/gonum/mat"

// kvCache is the append-only key/value history of one decoder layer
// within one decode session.
//
// The cache grows by exactly one key/value vector per beam-batch row per
// decoding step, optionally truncated to a sliding window, and supports
// the two beam-search reshapes: contiguous replication when the beam
// dimension first widens (repeat), and per-batch-row gathering with
// repeats when beams are pruned and re-expanded (reorder).
//
// Invariants:
//   - After t pushes, Len() == min(t, window) (window 0 ⇒ unbounded).
//   - Every row holds the same number of entries.
//   - An entry is immutable once pushed. Reshapes therefore copy the
//     per-row entry slices but share the entry vectors themselves; a
//     later push appends to the fresh slice and can never alias a
//     sibling beam's history.
type kvCache struct {
	dim    int
	window int // 0 = unbounded
	steps  int // total pushes, monotone

	// keys[row][step] and vals[row][step] are dim-wide vectors.
	keys [][][]float64
	vals [][][]float64
}

// newKVCache returns an empty cache over the given beam-batch rows.
// A fresh cache per decode session is the reset operation: building two
// sessions in a row is trivially idempotent and no state survives a
// completed decode.
func newKVCache(rows, dim, window int) *kvCache {
	return &kvCache{
		dim:    dim,
		window: window,
		keys:   make([][][]float64, rows),
		vals:   make([][][]float64, rows),
	}
}

// Rows reports the current beam-batch width of the cache.
func (c *kvCache) Rows() int { return len(c.keys) }

// Steps reports the number of pushes since construction.
func (c *kvCache) Steps() int { return c.steps }

// Len reports the entries currently held per row:
// min(Steps, window), or Steps when unbounded.
func (c *kvCache) Len() int {
	if c.window > 0 && c.steps > c.window {
		return c.window
	}

	return c.steps
}

// push appends one key/value vector per row, then truncates to the
// sliding window when one is configured.
//
// Contract: len(ks) == len(vs) == Rows(); vectors are dim-wide and must
// not be mutated by the caller afterwards.
func (c *kvCache) push(ks, vs [][]float64) {
	for r := range c.keys {
		c.keys[r] = append(c.keys[r], ks[r])
		c.vals[r] = append(c.vals[r], vs[r])
		if c.window > 0 && len(c.keys[r]) > c.window {
			c.keys[r] = c.keys[r][len(c.keys[r])-c.window:]
			c.vals[r] = c.vals[r][len(c.vals[r])-c.window:]
		}
	}
	c.steps++
}

// repeat replicates every row width times, contiguously: row b becomes
// rows b·width..b·width+width−1. Used once, when the beam dimension
// first widens from the base batch.
func (c *kvCache) repeat(width int) {
	var (
		rows = len(c.keys)
		nk   = make([][][]float64, 0, rows*width)
		nv   = make([][][]float64, 0, rows*width)
	)
	for r := 0; r < rows; r++ {
		for i := 0; i < width; i++ {
			nk = append(nk, cloneEntries(c.keys[r]))
			nv = append(nv, cloneEntries(c.vals[r]))
		}
	}
	c.keys, c.vals = nk, nv
}

// reorder rebuilds the cache so that, within each base batch row b, new
// beam i holds the history of surviving source beam perRow[b][i].
// Repeats are expected (a strong beam's children usually outnumber one)
// and the beam width may change (len(perRow[b]) need not equal the old
// width).
//
// Contract: Rows() is divisible by len(perRow); every source index lies
// in [0, oldWidth). Must run after the push of the current step and
// before the next step's self-attention, on pain of stale histories.
func (c *kvCache) reorder(perRow [][]int) {
	var (
		bsz      = len(perRow)
		oldWidth = len(c.keys) / bsz
		newWidth = len(perRow[0])
		nk       = make([][][]float64, 0, bsz*newWidth)
		nv       = make([][][]float64, 0, bsz*newWidth)
	)
	for b := 0; b < bsz; b++ {
		for _, src := range perRow[b] {
			nk = append(nk, cloneEntries(c.keys[b*oldWidth+src]))
			nv = append(nv, cloneEntries(c.vals[b*oldWidth+src]))
		}
	}
	c.keys, c.vals = nk, nv
}

// matrices materializes row r's current history as L×dim key and value
// matrices for the attention primitive, L == Len().
//
// Complexity: O(L·dim).
func (c *kvCache) matrices(r int) (*mat.Dense, *mat.Dense) {
	l := len(c.keys[r])
	k := mat.NewDense(l, c.dim, nil)
	v := mat.NewDense(l, c.dim, nil)
	for t := 0; t < l; t++ {
		copy(k.RawRowView(t), c.keys[r][t])
		copy(v.RawRowView(t), c.vals[r][t])
	}

	return k, v
}

// cloneEntries copies the per-row entry slice; the entry vectors are
// shared (immutable once pushed).
func cloneEntries(entries [][]float64) [][]float64 {
	out := make([][]float64, len(entries))
	copy(out, entries)

	return out
}
