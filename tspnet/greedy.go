// Package tspnet - single-path rollout (greedy or sampling).
//
// The rollout drives the decoder one step at a time: the query starts
// at the start token plus positional encoding 0, only the start token
// is marked visited, and every step selects one unvisited city — by
// arg-max, or by seeded categorical sampling — accumulates its
// log-probability, marks it visited, and re-anchors the query on the
// chosen city's contextual embedding plus the next step's positional
// encoding. After n steps the per-row selections form the tour.
package tspnet

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// rollout runs the greedy (sample==false) or sampling rollout.
//
// Complexity: O(n·bsz·layers·(n+dim)·dim).
func (m *Net) rollout(enc *Encoded, sample bool, seed uint64) (*Solution, error) {
	var (
		bsz    = enc.Batch()
		n      = enc.Nodes()
		sess   = m.dec.newSession(bsz)
		src    = samplingSource(seed)
		h      = make([]*mat.VecDense, bsz)
		masks  = make([][]bool, bsz)
		baseOf = make([]int, bsz)
		tours  = make([][]int, bsz)
		scores = make([]float64, bsz)
	)
	for b := 0; b < bsz; b++ {
		h[b] = m.queryAt(enc, b, n, 0) // start token, step 0
		masks[b] = make([]bool, n+1)
		masks[b][n] = true // the start token is never selectable again
		baseOf[b] = b
		tours[b] = make([]int, 0, n)
	}

	for t := 0; t < n; t++ {
		probs, err := m.dec.step(sess, h, enc.kAtt, enc.vAtt, baseOf, masks)
		if err != nil {
			return nil, err
		}
		for b := 0; b < bsz; b++ {
			var idx int
			if sample {
				idx = int(distuv.NewCategorical(probs[b], src).Rand())
			} else {
				idx = floats.MaxIdx(probs[b])
			}
			// log(0) = -Inf when sampling forces a zero-mass node;
			// propagated, not trapped.
			scores[b] += math.Log(probs[b][idx])
			tours[b] = append(tours[b], idx)
			masks[b][idx] = true
			h[b] = m.queryAt(enc, b, idx, t+1)
		}
	}

	return &Solution{Tours: tours, Scores: scores}, nil
}
