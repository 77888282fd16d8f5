package m

import "errors"

var (
	// ErrInvalidLayerIndex is returned when a layer index does not name an
	// existing layer.
	ErrInvalidLayerIndex = errors.New("invalid layer index")
	// ErrShapeMismatch is returned when an input, target or cached
	// activation does not have the width the network expects.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidSize is returned for non-positive layer widths.
	ErrInvalidSize = errors.New("invalid layer size")
)
