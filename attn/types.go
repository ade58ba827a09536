package attn

import "errors"

// Sentinel errors for attention shape contracts.
var (
	// ErrHeadsDivideDim is returned when the feature width is not an
	// exact multiple of the head count.
	ErrHeadsDivideDim = errors.New("attn: feature width not divisible by head count")

	// ErrKeyValueMismatch is returned when keys and values disagree on
	// length or width, or when the mask length differs from the key
	// length.
	ErrKeyValueMismatch = errors.New("attn: key/value/mask shapes disagree")
)
