package autodiff

// Exp is the element-wise exponential.
//
// Backward: d(e^a)/da = e^a, so grad_a = grad * out.
type Exp struct{}

// Op returns OpExp.
func (Exp) Op() Op { return OpExp }

// Forward computes e^a and saves the output.
func (Exp) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpExp, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	raw, err := a.backend.Exp(a.raw)
	if err != nil {
		return nil, err
	}
	out := a.wrap(raw)
	if err := Save(ctx, outputSaved{out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Backward computes grad * e^a.
func (Exp) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[outputSaved](ctx)
	if err != nil {
		return nil, err
	}
	out, err := grad.backend.Mul(grad.raw, s.out.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(out)}, nil
}

func (Exp) sealed() {}
