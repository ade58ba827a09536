// Package transformertsp is a transformer-based constructive solver for
// the Euclidean Traveling Salesman Problem: encode a set of 2D cities
// once, then build a tour one city at a time with an autoregressive,
// cache-backed attention decoder.
//
// 🚀 What lives here?
//
//	A forward-inference library organized into focused subpackages:
//		• Attention: the scaled dot-product multi-head primitive + PEs
//		• Embeddings: five coordinate-to-vector strategies
//		• Encoder/decoder: the model itself, with greedy, sampling and
//		  batched beam-search decoding
//		• Tours: permutation validation and Euclidean cycle length
//
// ✨ Why this shape?
//
//   - Deterministic – every random draw flows from an explicit seed
//   - Pure Go – gonum is the linear-algebra engine, no cgo
//   - Session-scoped state – concurrent decodes never share caches
//
// Under the hood, everything is organized under five subpackages:
//
//	attn/   — multi-head attention primitive + sinusoidal encodings
//	nn/     — Linear / LayerNorm / BatchNorm / Conv1d building blocks
//	embed/  — node-embedding strategies (linear + conv variants)
//	tspnet/ — encoder, cached decoder, greedy/sampling/beam decoding
//	tsp/    — tour validation, tour length, instance generation
//
// Quick start:
//
//	instances, _ := tsp.RandomInstances(4, 20, 7)
//	net, _ := tspnet.New(tspnet.DefaultConfig())
//	res, _ := net.Decode(instances, tspnet.DecodeOptions{Greedy: true})
//	length, _ := tsp.TourLength(instances[0], res.Greedy.Tours[0])
//
// Start with tspnet.New, give it coordinates, get tours.
package transformertsp
