package autodiff

// Mul is broadcasting element-wise multiplication: out = a * b.
//
// Backward:
//   - d(a*b)/da = b, so grad_a = grad * b
//   - d(a*b)/db = a, so grad_b = grad * a
type Mul struct{}

// Op returns OpMul.
func (Mul) Op() Op { return OpMul }

// Forward computes a * b and saves both operands.
func (Mul) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpMul, inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	if err := Save(ctx, pairSaved{a, b}); err != nil {
		return nil, err
	}
	out, err := a.backend.Mul(a.raw, b.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward returns (grad*b, grad*a).
func (Mul) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[pairSaved](ctx)
	if err != nil {
		return nil, err
	}
	be := grad.backend
	gradA, err := be.Mul(grad.raw, s.b.raw)
	if err != nil {
		return nil, err
	}
	gradB, err := be.Mul(grad.raw, s.a.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(gradA), grad.wrap(gradB)}, nil
}

func (Mul) sealed() {}
