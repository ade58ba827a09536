// Package tsp holds the tour-level domain types shared by the neural
// solver and its callers: tour validation, Euclidean cycle length, and
// deterministic random instance generation.
//
// A tour is a permutation of the node indices 0..n−1 in visiting order;
// the cycle implicitly closes from the last node back to the first.
// Instances are n×2 coordinate matrices (one row per city).
//
// Use TourLength to score any tour against its instance — it is a pure
// evaluation metric, deliberately free of model state or gradients —
// and ValidateTour to check the permutation property the solver
// guarantees for every tour it emits.
package tsp
