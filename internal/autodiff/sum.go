package autodiff

import "github.com/born-ml/minigrad/internal/tensor"

// Sum adds up a along one dimension, keeping it with size 1. Without a
// dimension input every element is summed into a tensor of shape [1].
//
// Inputs: a, and optionally a constant holding the dimension.
//
// Backward: grad is returned as is for a and broadcast back to a's shape by
// the chain rule; the dimension input gets a zero.
type Sum struct{}

// Op returns OpSum.
func (Sum) Op() Op { return OpSum }

// Forward reduces a by summation.
func (Sum) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	dim, err := wantOptional(OpSum, inputs)
	if err != nil {
		return nil, err
	}
	if err := Save(ctx, sumSaved{shape: inputs[0].Shape(), n: len(inputs)}); err != nil {
		return nil, err
	}
	out, err := reduce(inputs[0], dim, inputs[0].backend.SumReduce)
	if err != nil {
		return nil, err
	}
	return inputs[0].wrap(out), nil
}

// Backward returns grad for a and a zero for the dimension.
func (Sum) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[sumSaved](ctx)
	if err != nil {
		return nil, err
	}
	return padZeros(grad.backend, s.n-1, grad)
}

func (Sum) sealed() {}

// reduce applies kernel along the dimension held by dim, or over every
// element when dim is nil.
func reduce(a, dim *Tensor, kernel func(*tensor.RawTensor, int) (*tensor.RawTensor, error)) (*tensor.RawTensor, error) {
	if dim == nil {
		flat, err := flatten(a)
		if err != nil {
			return nil, err
		}
		return kernel(flat, 0)
	}
	d, err := axis(dim)
	if err != nil {
		return nil, err
	}
	return kernel(a.raw, d)
}
