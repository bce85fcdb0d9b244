package tensor

import (
	"fmt"
	"iter"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// RawTensor is the low-level tensor representation: a strided view over a
// flat float64 storage buffer. Several RawTensors may share one storage
// (permute, view, detach); none of them own it exclusively.
type RawTensor struct {
	storage []float64
	shape   Shape
	strides Strides
	size    int
}

// NewRaw creates a row-major RawTensor over storage.
// The storage is used as is, not copied.
func NewRaw(storage []float64, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return NewRawStrided(storage, shape, shape.ComputeStrides())
}

// NewRawStrided creates a RawTensor with explicit strides over storage.
// Every position reachable through shape and strides must lie inside storage.
func NewRawStrided(storage []float64, shape Shape, strides Strides) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(strides) != len(shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "strides %v do not match shape %v", strides, shape)
	}

	last := 0
	for i, dim := range shape {
		last += (dim - 1) * strides[i]
	}
	if last >= len(storage) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"storage of length %d too small for shape %v with strides %v", len(storage), shape, strides)
	}

	return &RawTensor{
		storage: storage,
		shape:   shape.Clone(),
		strides: strides.Clone(),
		size:    shape.NumElements(),
	}, nil
}

// Zeros allocates a zero-filled row-major RawTensor.
func Zeros(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return NewRaw(make([]float64, shape.NumElements()), shape)
}

// Storage returns the underlying storage.
// WARNING: Direct access to shared memory. Use with caution.
func (r *RawTensor) Storage() []float64 {
	return r.storage
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() Strides {
	return r.strides
}

// Size returns the total number of elements.
func (r *RawTensor) Size() int {
	return r.size
}

// Dims returns the number of dimensions.
func (r *RawTensor) Dims() int {
	return len(r.shape)
}

// IsContiguous reports whether r is laid out row-major from the start of
// its storage, so ordinal i lives at storage position i. Strides of
// dimensions with size 1 are ignored since they are never stepped.
func (r *RawTensor) IsContiguous() bool {
	want := r.shape.ComputeStrides()
	for i, s := range r.strides {
		if r.shape[i] > 1 && s != want[i] {
			return false
		}
	}
	return true
}

// Position returns the storage position for index.
func (r *RawTensor) Position(index Index) (int, error) {
	if len(index) != len(r.shape) {
		return 0, errors.Wrapf(ErrIndex, "index %v has %d dimensions, tensor has %d", index, len(index), len(r.shape))
	}
	for i, idx := range index {
		if idx < 0 || idx >= r.shape[i] {
			return 0, errors.Wrapf(ErrIndex, "index %v out of range for shape %v", index, r.shape)
		}
	}
	return IndexToPosition(index, r.strides), nil
}

// Get returns the element at index.
func (r *RawTensor) Get(index Index) (float64, error) {
	pos, err := r.Position(index)
	if err != nil {
		return 0, err
	}
	return r.storage[pos], nil
}

// Set writes v at index.
func (r *RawTensor) Set(index Index, v float64) error {
	pos, err := r.Position(index)
	if err != nil {
		return err
	}
	r.storage[pos] = v
	return nil
}

// Indices yields every valid index in row-major order.
// Each yielded Index is freshly allocated and may be retained.
func (r *RawTensor) Indices() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for i := 0; i < r.size; i++ {
			idx := make(Index, len(r.shape))
			ToIndex(i, r.shape, idx)
			if !yield(idx) {
				return
			}
		}
	}
}

// Sample returns a uniformly random valid index.
func (r *RawTensor) Sample(rng *rand.Rand) Index {
	idx := make(Index, len(r.shape))
	for i, dim := range r.shape {
		idx[i] = rng.Intn(dim)
	}
	return idx
}

// Permute returns a view with dimensions reordered by order.
// The storage is shared; only shape and strides change.
func (r *RawTensor) Permute(order ...int) (*RawTensor, error) {
	if len(order) != len(r.shape) {
		return nil, errors.Wrapf(ErrIndex, "permutation %v has %d entries, tensor has %d dimensions",
			order, len(order), len(r.shape))
	}

	seen := make([]bool, len(order))
	shape := make(Shape, len(order))
	strides := make(Strides, len(order))
	for i, o := range order {
		if o < 0 || o >= len(order) || seen[o] {
			return nil, errors.Wrapf(ErrIndex, "%v is not a permutation of %d dimensions", order, len(order))
		}
		seen[o] = true
		shape[i] = r.shape[o]
		strides[i] = r.strides[o]
	}

	return &RawTensor{
		storage: r.storage,
		shape:   shape,
		strides: strides,
		size:    r.size,
	}, nil
}

// String renders the tensor as nested brackets in row-major order.
func (r *RawTensor) String() string {
	var sb strings.Builder
	idx := make(Index, len(r.shape))
	for i := 0; i < r.size; i++ {
		ToIndex(i, r.shape, idx)

		// Open one bracket per trailing zero coordinate.
		open := 0
		for d := len(idx) - 1; d >= 0 && idx[d] == 0; d-- {
			open++
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strings.Repeat("[", open))

		fmt.Fprintf(&sb, "%.4f", r.storage[IndexToPosition(idx, r.strides)])

		closing := 0
		for d := len(idx) - 1; d >= 0 && idx[d] == r.shape[d]-1; d-- {
			closing++
		}
		sb.WriteString(strings.Repeat("]", closing))
	}
	return sb.String()
}
