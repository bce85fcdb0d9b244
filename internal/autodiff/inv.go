package autodiff

// Inv is the element-wise reciprocal: out = 1/a.
//
// Backward: d(1/a)/da = -1/a², so grad_a = -grad/a².
type Inv struct{}

// Op returns OpInv.
func (Inv) Op() Op { return OpInv }

// Forward computes 1/a and saves a.
func (Inv) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpInv, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	if err := Save(ctx, inputSaved{a}); err != nil {
		return nil, err
	}
	out, err := a.backend.Inv(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward computes -grad/a².
func (Inv) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[inputSaved](ctx)
	if err != nil {
		return nil, err
	}
	out, err := grad.backend.InvBack(s.x.raw, grad.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(out)}, nil
}

func (Inv) sealed() {}
