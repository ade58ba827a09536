// Package embed maps raw 2D city coordinates to fixed-width per-node
// embedding vectors.
//
// Five interchangeable strategies sit behind the Embedder interface:
//
//   - Linear: a direct projection of each coordinate pair.
//   - Conv: a valid convolution over each node's k-nearest-neighbor
//     coordinate window, combined with a linear skip of the raw
//     coordinate.
//   - ConvSamePadding: a same-padded convolution over the node sequence
//     itself.
//   - ConvLinear: same-padded convolution plus linear skip.
//   - ConvXY: the neighbor-window convolution computed twice, on windows
//     sorted by x and by y coordinate, summed.
//
// Every strategy produces exactly one embedding row per input node,
// order-preserving. Neighbor windows include the node itself and are
// deterministic: equal distances break ties by node index.
package embed
