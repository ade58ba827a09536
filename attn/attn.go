// Package attn - scaled dot-product multi-head attention.
//
// Heads is the batched form (many query rows against one key/value
// sequence); Single is the one-query convenience the autoregressive
// decoder uses every step. Both return the attended output together
// with the attention-weight distribution, head-averaged when more than
// one head is configured, since downstream the final decoder layer
// consumes those weights directly as a probability distribution.
package attn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maskedLogit replaces the logit of a hidden position before softmax.
// Large and negative, but finite: −Inf would turn softmax into NaN when
// a whole row is hidden.
const maskedLogit = -1e9

// NoClip disables logit squashing when passed as the clip argument.
const NoClip = 0

// Heads computes multi-head attention of every row of q against the
// key/value sequence.
//
// Contract:
//   - q is m×d, k and v are L×d, d divisible by heads.
//   - mask, when non-nil, has length L; mask[j]==true hides position j.
//   - clip > 0 squashes logits through clip·tanh before masking;
//     NoClip (or any value ≤ 0) leaves them untouched.
//
// Returns the attended m×d output and the m×L attention weights
// (averaged over heads when heads > 1). Pure function; no state.
//
// Complexity: O(m·L·d).
func Heads(q, k, v *mat.Dense, heads int, mask []bool, clip float64) (*mat.Dense, *mat.Dense, error) {
	m, d := q.Dims()
	kl, kd := k.Dims()
	vl, vd := v.Dims()
	if kd != d || vd != d || vl != kl {
		return nil, nil, ErrKeyValueMismatch
	}
	if mask != nil && len(mask) != kl {
		return nil, nil, ErrKeyValueMismatch
	}
	if heads < 1 || d%heads != 0 {
		return nil, nil, ErrHeadsDivideDim
	}

	var (
		hd      = d / heads
		scale   = 1.0 / math.Sqrt(float64(hd))
		out     = mat.NewDense(m, d, nil)
		weights = mat.NewDense(m, kl, nil)
		logits  = make([]float64, kl)
	)

	for i := 0; i < m; i++ {
		qRow := q.RawRowView(i)
		wRow := weights.RawRowView(i)
		oRow := out.RawRowView(i)
		for h := 0; h < heads; h++ {
			lo := h * hd
			qh := qRow[lo : lo+hd]

			// Scaled dot products against every key, then optional
			// squashing and masking.
			for j := 0; j < kl; j++ {
				kh := k.RawRowView(j)[lo : lo+hd]
				var dot float64
				for t, qv := range qh {
					dot += qv * kh[t]
				}
				dot *= scale
				if clip > 0 {
					dot = clip * math.Tanh(dot)
				}
				if mask != nil && mask[j] {
					dot = maskedLogit
				}
				logits[j] = dot
			}
			softmaxInPlace(logits)

			// Weighted value sum for this head slice, and the head
			// contribution to the averaged weight distribution.
			for j, w := range logits {
				vh := v.RawRowView(j)[lo : lo+hd]
				for t, vv := range vh {
					oRow[lo+t] += w * vv
				}
				wRow[j] += w
			}
		}
		if heads > 1 {
			inv := 1.0 / float64(heads)
			for j := range wRow {
				wRow[j] *= inv
			}
		}
	}

	return out, weights, nil
}

// Single attends one query vector against the key/value sequence and
// returns the attended vector plus the (head-averaged) weights.
//
// Same contract as Heads with m==1.
func Single(q *mat.VecDense, k, v *mat.Dense, heads int, mask []bool, clip float64) (*mat.VecDense, []float64, error) {
	d := q.Len()
	qm := mat.NewDense(1, d, nil)
	row := qm.RawRowView(0)
	for i := 0; i < d; i++ {
		row[i] = q.AtVec(i)
	}

	out, weights, err := Heads(qm, k, v, heads, mask, clip)
	if err != nil {
		return nil, nil, err
	}

	return mat.NewVecDense(d, out.RawRowView(0)), weights.RawRowView(0), nil
}

// softmaxInPlace overwrites logits with their softmax. Max-shifted for
// numeric range; the maskedLogit entries come out as exact zeros once
// any live logit exceeds them by ~700.
func softmaxInPlace(logits []float64) {
	maxv := math.Inf(-1)
	for _, v := range logits {
		if v > maxv {
			maxv = v
		}
	}
	var sum float64
	for i, v := range logits {
		e := math.Exp(v - maxv)
		logits[i] = e
		sum += e
	}
	inv := 1.0 / sum
	for i := range logits {
		logits[i] *= inv
	}
}
