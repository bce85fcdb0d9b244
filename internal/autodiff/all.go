package autodiff

import "github.com/pkg/errors"

// All reports whether every value along a dimension is non-zero, as 1 or 0.
// Without a dimension input the whole tensor is reduced to shape [1].
// Values are expected to be 0/1 masks.
//
// All has no gradient.
type All struct{}

// Op returns OpAll.
func (All) Op() Op { return OpAll }

// Forward reduces a by logical AND.
func (All) Forward(_ *Context, inputs ...*Tensor) (*Tensor, error) {
	dim, err := wantOptional(OpAll, inputs)
	if err != nil {
		return nil, err
	}
	out, err := reduce(inputs[0], dim, inputs[0].backend.AllReduce)
	if err != nil {
		return nil, err
	}
	return inputs[0].wrap(out), nil
}

// Backward always fails with ErrNoGradient.
func (All) Backward(_ *Context, _ *Tensor) ([]*Tensor, error) {
	return nil, errors.Wrapf(ErrNoGradient, "%s", OpAll)
}

func (All) sealed() {}
