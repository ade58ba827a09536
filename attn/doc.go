// Package attn provides the scaled dot-product multi-head attention
// primitive shared by the encoder and decoder, plus the sinusoidal
// positional-encoding table injected into decode queries.
//
// The primitive is a pure function of its inputs: queries, keys and
// values arrive as explicit matrices (rows = positions, columns =
// features), an optional boolean mask hides positions, and an optional
// clip value squashes logits through clip·tanh before masking. Masked
// logits are driven to a large negative value rather than −Inf so that
// softmax never propagates NaNs.
//
// No projections live here; callers own their query/key/value maps.
package attn
