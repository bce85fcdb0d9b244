package autodiff

import (
	"math/rand"
	"reflect"

	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// createConfig collects CreateOption settings.
type createConfig struct {
	requiresGrad bool
	rng          *rand.Rand
}

// CreateOption configures a construction helper.
type CreateOption func(*createConfig)

// RequiresGrad marks the new tensor as a gradient leaf.
func RequiresGrad(v bool) CreateOption {
	return func(c *createConfig) {
		c.requiresGrad = v
	}
}

// WithRand sets the random source used by Rand.
func WithRand(rng *rand.Rand) CreateOption {
	return func(c *createConfig) {
		c.rng = rng
	}
}

func applyOptions(opts []CreateOption) createConfig {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newLeaf(raw *tensor.RawTensor, b tensor.Backend, cfg createConfig) *Tensor {
	t := New(raw, b)
	t.requiresGrad = cfg.requiresGrad
	return t
}

// Zeros creates a zero-filled tensor.
//
// Example:
//
//	t, err := autodiff.Zeros(tensor.Shape{3, 4}, cpu.New())
func Zeros(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	raw, err := tensor.Zeros(shape)
	if err != nil {
		return nil, err
	}
	return newLeaf(raw, b, applyOptions(opts)), nil
}

// Ones creates a tensor filled with ones.
func Ones(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return Full(shape, 1, b, opts...)
}

// Full creates a tensor filled with value.
func Full(shape tensor.Shape, value float64, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	raw, err := tensor.Zeros(shape)
	if err != nil {
		return nil, err
	}
	data := raw.Storage()
	for i := range data {
		data[i] = value
	}
	return newLeaf(raw, b, applyOptions(opts)), nil
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Without WithRand the global math/rand source is used.
//
// Example:
//
//	rng := rand.New(rand.NewSource(10))
//	t, err := autodiff.Rand(tensor.Shape{2, 3}, b, autodiff.WithRand(rng))
func Rand(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	cfg := applyOptions(opts)
	raw, err := tensor.Zeros(shape)
	if err != nil {
		return nil, err
	}
	data := raw.Storage()
	for i := range data {
		if cfg.rng != nil {
			data[i] = cfg.rng.Float64()
		} else {
			data[i] = rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally
		}
	}
	return newLeaf(raw, b, cfg), nil
}

// FromSlice creates a tensor of shape from row-major data. The data is copied.
//
// Example:
//
//	t, err := autodiff.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
func FromSlice(data []float64, shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	raw, err := tensor.NewRaw(append([]float64(nil), data...), shape)
	if err != nil {
		return nil, err
	}
	return newLeaf(raw, b, applyOptions(opts)), nil
}

// Scalar creates a one-element tensor of shape [1].
func Scalar(v float64, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return FromSlice([]float64{v}, tensor.Shape{1}, b, opts...)
}

// FromNested builds a tensor from a nested literal. The shape is the nesting
// depth and lengths; the values are the flattened leaves in row-major order.
//
// Accepted leaves are any Go integer or float kind. Sequences may be typed
// ([][]float64, []int) or []any. A bare number gives a tensor of shape [1].
// Jagged or empty sequences fail with tensor.ErrInvalidShape.
//
// Example:
//
//	t, err := autodiff.FromNested([][]float64{{1, 2}, {3, 4}}, b) // shape [2, 2]
func FromNested(ls any, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	var (
		shape tensor.Shape
		data  []float64
	)
	if err := flattenNested(reflect.ValueOf(ls), 0, &shape, &data); err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		shape = tensor.Shape{1}
	}
	return FromSlice(data, shape, b, opts...)
}

// flattenNested walks v depth-first. The first sequence seen at each depth
// fixes that dimension; every later sequence at the same depth must match.
func flattenNested(v reflect.Value, depth int, shape *tensor.Shape, data *[]float64) error {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := v.Len()
		if n == 0 {
			return errors.Wrapf(tensor.ErrInvalidShape, "empty sequence at depth %d", depth)
		}
		switch {
		case depth == len(*shape) && len(*data) == 0:
			*shape = append(*shape, n)
		case depth >= len(*shape) || (*shape)[depth] != n:
			return errors.Wrapf(tensor.ErrInvalidShape, "jagged sequence at depth %d: length %d, expected shape %v",
				depth, n, *shape)
		}
		for i := 0; i < n; i++ {
			if err := flattenNested(v.Index(i), depth+1, shape, data); err != nil {
				return err
			}
		}
		return nil

	case reflect.Float32, reflect.Float64:
		return appendLeaf(v.Float(), depth, shape, data)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendLeaf(float64(v.Int()), depth, shape, data)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return appendLeaf(float64(v.Uint()), depth, shape, data)
	default:
		return errors.Wrapf(tensor.ErrInvalidShape, "unsupported literal element %v", v.Kind())
	}
}

func appendLeaf(x float64, depth int, shape *tensor.Shape, data *[]float64) error {
	if depth != len(*shape) {
		return errors.Wrapf(tensor.ErrInvalidShape, "jagged sequence: number at depth %d, expected depth %d",
			depth, len(*shape))
	}
	*data = append(*data, x)
	return nil
}

// MustTensor panics if err is non-nil. Intended for fixtures and examples.
func MustTensor(t *Tensor, err error) *Tensor {
	if err != nil {
		panic(err)
	}
	return t
}
