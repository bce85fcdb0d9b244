package autodiff

// Neg is element-wise negation: out = -a.
//
// Backward: grad_a = -grad.
type Neg struct{}

// Op returns OpNeg.
func (Neg) Op() Op { return OpNeg }

// Forward computes -a.
func (Neg) Forward(_ *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpNeg, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	out, err := a.backend.Neg(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward negates the upstream gradient.
func (Neg) Backward(_ *Context, grad *Tensor) ([]*Tensor, error) {
	out, err := grad.backend.Neg(grad.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(out)}, nil
}

func (Neg) sealed() {}
