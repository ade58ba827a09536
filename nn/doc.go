// Package nn provides the small set of learned layer primitives the
// tour-construction model is assembled from: dense (Linear) maps, layer
// and batch normalization, and 1D convolutions over short coordinate
// windows.
//
// Everything is expressed on gonum matrices (*mat.Dense, *mat.VecDense):
// rows are sequence positions, columns are features. The package holds
// parameters and forward passes only — no gradients, no optimizer state;
// training is an external concern.
//
// Design:
//   - Deterministic: all parameter initialization flows from an explicit
//     *rand.Rand; same seed ⇒ identical parameters.
//   - Constructors validate dimensions and return sentinel errors from
//     types.go; forward passes document their shape contracts and defer
//     to gonum's own dimension panics on internal misuse.
//   - No logging, no hidden allocations beyond the returned values.
package nn
