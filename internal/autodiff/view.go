package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// View reinterprets contiguous storage under a new shape with the same
// number of elements.
//
// Inputs: a, and a constant holding the new shape.
//
// Backward: grad is viewed back to a's shape, copied first when it is not
// contiguous.
type View struct{}

// Op returns OpView.
func (View) Op() Op { return OpView }

// Forward returns a's storage under the new shape.
func (View) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpView, inputs, 2); err != nil {
		return nil, err
	}
	a := inputs[0]
	if !a.raw.IsContiguous() {
		return nil, errors.Wrapf(ErrNotContiguous, "view of shape %v with strides %v", a.Shape(), a.raw.Strides())
	}
	dims, err := ints(inputs[1])
	if err != nil {
		return nil, err
	}
	out, err := reshape(a.raw, tensor.Shape(dims))
	if err != nil {
		return nil, err
	}
	if err := Save(ctx, viewSaved{a.Shape()}); err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward views grad with the original shape.
func (View) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[viewSaved](ctx)
	if err != nil {
		return nil, err
	}
	raw := grad.raw
	if !raw.IsContiguous() {
		if raw, err = grad.backend.Copy(raw); err != nil {
			return nil, err
		}
	}
	out, err := reshape(raw, s.shape)
	if err != nil {
		return nil, err
	}
	return padZeros(grad.backend, 1, grad.wrap(out))
}

func (View) sealed() {}

// reshape views contiguous r under shape.
func reshape(r *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.Size() {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "cannot view %v (%d elements) as %v (%d elements)",
			r.Shape(), r.Size(), shape, shape.NumElements())
	}
	return tensor.NewRaw(r.Storage(), shape)
}
