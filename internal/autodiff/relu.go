package autodiff

// ReLU is the rectified linear unit: out = max(0, a).
//
// Backward: grad passes where a > 0 and is zero elsewhere, including a = 0.
type ReLU struct{}

// Op returns OpReLU.
func (ReLU) Op() Op { return OpReLU }

// Forward computes max(0, a) and saves a.
func (ReLU) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpReLU, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	if err := Save(ctx, inputSaved{a}); err != nil {
		return nil, err
	}
	out, err := a.backend.ReLU(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward masks grad by a > 0.
func (ReLU) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[inputSaved](ctx)
	if err != nil {
		return nil, err
	}
	out, err := grad.backend.ReLUBack(s.x.raw, grad.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(out)}, nil
}

func (ReLU) sealed() {}
