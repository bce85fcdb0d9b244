package tensor

import "github.com/pkg/errors"

// Shape represents the dimensions of a tensor.
type Shape []int

// Strides holds the storage step for each dimension of a tensor.
type Strides []int

// Index is a multi-dimensional position inside a tensor.
type Index []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (at least one dimension, all dimensions > 0).
func (s Shape) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidShape, "shape has no dimensions")
	}
	for i, dim := range s {
		if dim <= 0 {
			return errors.Wrapf(ErrInvalidShape, "dimension %d is %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() Strides {
	strides := make(Strides, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	clone := make(Strides, len(st))
	copy(clone, st)
	return clone
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5)
//	(5,)   + (3, 5) → (3, 5)
//	(3, 4) + (3, 5) → ErrShapeMismatch
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, errors.Wrapf(ErrShapeMismatch, "cannot broadcast %v with %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, nil
}

// ToIndex converts an ordinal in [0, shape.NumElements()) to the
// row-major multi-index it names, writing into out.
func ToIndex(ordinal int, shape Shape, out Index) {
	cur := ordinal
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = cur % shape[i]
		cur /= shape[i]
	}
}

// BroadcastIndex maps an index of the broadcast (bigger) shape onto the
// smaller shape it was broadcast from. Dimensions of size 1 map to 0 and
// extra leading dimensions are dropped.
func BroadcastIndex(bigIndex Index, bigShape, shape Shape, out Index) {
	offset := len(bigShape) - len(shape)
	for i, dim := range shape {
		if dim > 1 {
			out[i] = bigIndex[i+offset]
		} else {
			out[i] = 0
		}
	}
}

// IndexToPosition converts a multi-index into a storage position using strides.
func IndexToPosition(index Index, strides Strides) int {
	pos := 0
	for i, idx := range index {
		pos += idx * strides[i]
	}
	return pos
}
