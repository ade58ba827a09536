package embed

import "errors"

// CoordDim is the width of one raw node coordinate (x, y).
const CoordDim = 2

// Kind selects an embedding strategy.
type Kind string

// Recognized embedding strategies.
const (
	Linear          Kind = "linear"
	Conv            Kind = "conv"
	ConvSamePadding Kind = "conv_same_padding"
	ConvLinear      Kind = "conv_linear"
	ConvXY          Kind = "convXY"
)

// Sentinel errors for embedding construction and use.
var (
	// ErrUnknownKind is returned when New receives an unrecognized Kind.
	ErrUnknownKind = errors.New("embed: unknown embedding kind")

	// ErrBadConfig is returned when Config fields are missing or
	// non-positive for the selected kind.
	ErrBadConfig = errors.New("embed: invalid embedding config")

	// ErrKernelWindow is returned for the neighbor-window kinds (Conv,
	// ConvXY) when the kernel does not span the whole window, i.e.
	// Kernel != Neighbors+1. The reference formulation silently assumes
	// this; here it is a hard precondition.
	ErrKernelWindow = errors.New("embed: kernel must span the neighbor window (kernel == neighbors+1)")

	// ErrCoordShape is returned when the coordinate matrix is nil or not
	// n×2.
	ErrCoordShape = errors.New("embed: coordinates must be n×2")

	// ErrTooFewNodes is returned when an instance has fewer nodes than a
	// neighbor window requires.
	ErrTooFewNodes = errors.New("embed: instance smaller than neighbor window")
)

// Config carries the construction parameters shared by the strategies.
type Config struct {
	// Dim is the embedding width every strategy emits.
	Dim int

	// Neighbors is the window size k for the k-nearest-neighbor kinds
	// (the window holds k neighbors plus the node itself).
	Neighbors int

	// Kernel is the convolution kernel width for the conv kinds.
	Kernel int
}
