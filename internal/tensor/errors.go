package tensor

import "github.com/pkg/errors"

// Errors returned by the tensor container and by backend kernels.
var (
	// ErrShapeMismatch reports shapes that cannot be combined: broadcast
	// incompatibility, a storage length that does not match a shape, or
	// mismatched matrix-multiply inner dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidShape reports a shape with non-positive dimensions or a
	// nested literal that is not rectangular.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrIndex reports an index outside the tensor or with the wrong rank.
	ErrIndex = errors.New("index out of range")
)
