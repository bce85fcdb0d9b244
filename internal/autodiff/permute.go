package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Permute reorders dimensions without moving data: output dimension i is
// input dimension order[i].
//
// Inputs: a, and a constant holding the order.
//
// Backward: grad is permuted by the inverse order.
type Permute struct{}

// Op returns OpPermute.
func (Permute) Op() Op { return OpPermute }

// Forward returns a permuted view of a.
func (Permute) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpPermute, inputs, 2); err != nil {
		return nil, err
	}
	a := inputs[0]
	order, err := ints(inputs[1])
	if err != nil {
		return nil, err
	}
	out, err := a.raw.Permute(order...)
	if err != nil {
		return nil, err
	}
	if err := Save(ctx, permuteSaved{shape: a.Shape(), order: order}); err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward permutes grad back to the input layout.
func (Permute) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[permuteSaved](ctx)
	if err != nil {
		return nil, err
	}

	inverse := make([]int, len(s.order))
	for i, o := range s.order {
		inverse[o] = i
	}
	out, err := grad.raw.Permute(inverse...)
	if err != nil {
		return nil, err
	}
	if !out.Shape().Equal(s.shape) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "permute backward produced %v, input was %v",
			out.Shape(), s.shape)
	}
	return padZeros(grad.backend, 1, grad.wrap(out))
}

func (Permute) sealed() {}
