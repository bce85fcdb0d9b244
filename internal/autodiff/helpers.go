package autodiff

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Saved tuples. Each rule that needs forward values in backward stores
// exactly one of these in its Context.
type (
	inputSaved  struct{ x *Tensor }
	outputSaved struct{ out *Tensor }
	pairSaved   struct{ a, b *Tensor }
	shapesSaved struct{ a, b tensor.Shape }
	viewSaved   struct{ shape tensor.Shape }
)

// sumSaved keeps the pre-reduce shape for diagnostics and the number of
// inputs the forward call received.
type sumSaved struct {
	shape tensor.Shape
	n     int
}

type permuteSaved struct {
	shape tensor.Shape
	order []int
}

// want checks that a rule received exactly n non-nil inputs.
func want(op Op, inputs []*Tensor, n int) error {
	if len(inputs) != n {
		return errors.Wrapf(ErrArity, "%s takes %d inputs, got %d", op, n, len(inputs))
	}
	for i, in := range inputs {
		if in == nil {
			return errors.Wrapf(ErrArity, "%s input %d is nil", op, i)
		}
	}
	return nil
}

// wantOptional checks for a required tensor followed by an optional one.
// It returns the optional input, or nil when absent.
func wantOptional(op Op, inputs []*Tensor) (*Tensor, error) {
	switch {
	case len(inputs) == 1 && inputs[0] != nil:
		return nil, nil
	case len(inputs) == 2 && inputs[0] != nil:
		return inputs[1], nil
	default:
		return nil, errors.Wrapf(ErrArity, "%s takes 1 or 2 inputs, got %d", op, len(inputs))
	}
}

// zeroCotangent is the placeholder gradient for non-tensor inputs such as an
// axis, a permutation or a shape.
func zeroCotangent(b tensor.Backend) (*Tensor, error) {
	return Zeros(tensor.Shape{1}, b)
}

// ints reads the integer values carried by a constant tensor.
func ints(t *Tensor) ([]int, error) {
	vals := t.Values()
	out := make([]int, len(vals))
	for i, v := range vals {
		if v != math.Trunc(v) {
			return nil, errors.Wrapf(tensor.ErrIndex, "expected integer values, got %v", vals)
		}
		out[i] = int(v)
	}
	return out, nil
}

// axis reads a single dimension index from t.
func axis(t *Tensor) (int, error) {
	dims, err := ints(t)
	if err != nil {
		return 0, err
	}
	if len(dims) != 1 {
		return 0, errors.Wrapf(tensor.ErrIndex, "expected a single dimension, got %v", dims)
	}
	return dims[0], nil
}

// flatten returns a contiguous one-dimensional view of t's values.
func flatten(t *Tensor) (*tensor.RawTensor, error) {
	raw := t.raw
	if !raw.IsContiguous() {
		var err error
		if raw, err = t.backend.Copy(raw); err != nil {
			return nil, err
		}
	}
	return tensor.NewRaw(raw.Storage()[:raw.Size()], tensor.Shape{raw.Size()})
}

// transposeLast swaps the trailing two dimensions of r as a view.
func transposeLast(r *tensor.RawTensor) (*tensor.RawTensor, error) {
	n := r.Dims()
	if n < 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "transpose needs at least 2 dimensions, got %v", r.Shape())
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	order[n-2], order[n-1] = n-1, n-2
	return r.Permute(order...)
}

// padZeros appends n zero cotangents to grads, one per trailing non-tensor input.
func padZeros(b tensor.Backend, n int, grads ...*Tensor) ([]*Tensor, error) {
	out := append(make([]*Tensor, 0, len(grads)+n), grads...)
	for range n {
		z, err := zeroCotangent(b)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, nil
}
