package tspnet

import "errors"

// Sentinel errors for model construction and decoding.
var (
	// ErrHeadsDivideDim is returned at construction when the embedding
	// width is not an exact multiple of the head count.
	ErrHeadsDivideDim = errors.New("tspnet: embedding width not divisible by head count")

	// ErrBadConfig is returned at construction for any other invalid
	// Config field; the wrapped message names the field.
	ErrBadConfig = errors.New("tspnet: invalid config")

	// ErrEmptyBatch is returned when Decode/Encode receives no instances.
	ErrEmptyBatch = errors.New("tspnet: empty instance batch")

	// ErrBatchMismatch is returned when instances in one batch disagree
	// on node count.
	ErrBatchMismatch = errors.New("tspnet: instances disagree on node count")

	// ErrPETooShort is returned when an instance needs more decode steps
	// than the configured positional-encoding table holds.
	ErrPETooShort = errors.New("tspnet: positional-encoding table shorter than tour length")

	// ErrOptionViolation is returned when DecodeOptions are inconsistent
	// (no mode selected, sampling without greedy, beam width < 1).
	ErrOptionViolation = errors.New("tspnet: invalid decode options")
)

// Solution is the outcome of one decoding mode: the best tour and its
// cumulative log-probability score per batch row.
//
// Scores are sums of log-probabilities and therefore ≤ 0; a score may be
// −Inf when a zero-probability step was forced (possible under sampling,
// never under greedy masked decoding). Callers comparing scores must
// tolerate −Inf.
type Solution struct {
	// Tours holds one tour per batch row: a permutation of 0..n−1 in
	// visiting order. The synthetic start token never appears.
	Tours [][]int

	// Scores holds the matching cumulative log-probabilities.
	Scores []float64
}

// Result is the tagged outcome of a Decode call. A mode that was not
// requested is nil — never a zero-filled placeholder.
type Result struct {
	// Greedy holds the greedy (or sampling) rollout, when requested.
	Greedy *Solution

	// BeamSearch holds the best beam per batch row, when requested.
	BeamSearch *Solution
}
