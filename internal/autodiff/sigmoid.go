package autodiff

// Sigmoid is the logistic function: σ(a) = 1 / (1 + exp(-a)).
type Sigmoid struct{}

// Op returns OpSigmoid.
func (Sigmoid) Op() Op { return OpSigmoid }

// Forward computes σ(a) and saves the output.
func (Sigmoid) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpSigmoid, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	raw, err := a.backend.Sigmoid(a.raw)
	if err != nil {
		return nil, err
	}
	out := a.wrap(raw)
	if err := Save(ctx, outputSaved{out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Backward computes grad * σ(a) * (1 - σ(a)) from the saved output.
func (Sigmoid) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[outputSaved](ctx)
	if err != nil {
		return nil, err
	}
	out := s.out
	be := grad.backend

	ones, err := Ones(out.Shape(), out.Backend())
	if err != nil {
		return nil, err
	}
	negOut, err := be.Neg(out.raw)
	if err != nil {
		return nil, err
	}
	oneMinus, err := be.Add(ones.raw, negOut)
	if err != nil {
		return nil, err
	}
	deriv, err := be.Mul(out.raw, oneMinus)
	if err != nil {
		return nil, err
	}
	gradA, err := be.Mul(grad.raw, deriv)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(gradA)}, nil
}

func (Sigmoid) sealed() {}
