// Package tspnet implements a transformer-based constructive solver for
// the Euclidean Traveling Salesman Problem.
//
// A Net encodes a batch of 2D city instances once (node embedding +
// self-attention encoder, with a learned synthetic start token) and then
// builds tours autoregressively: at every step an incremental decoder
// attends over the partial tour built so far (via a per-step key/value
// cache) and over the fixed encoder context, and emits a probability
// distribution over the not-yet-visited cities. The final decoder layer
// is a pointer-style head: its clipped single-head attention weights are
// the next-node distribution directly.
//
// Three decoding modes are available through Decode:
//
//   - greedy: arg-max at every step;
//   - sampling: seeded categorical sampling at every step;
//   - beam search: batched, with a dynamic width schedule
//     (min(B, n) first-move beams, full B afterwards) and exact
//     key/value-cache bookkeeping across beam pruning and re-expansion.
//
// All mutable decode state (caches, visited masks, beam scores) is owned
// by a per-call session, so independent Decode calls on one Net never
// share state. A Net itself is immutable after construction and safe for
// concurrent use.
//
// Scope: forward inference only. Parameters are randomly initialized
// from the configured seed; training, checkpoint I/O and device
// placement are external concerns.
package tspnet
