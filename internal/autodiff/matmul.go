package autodiff

// MatMul is batched matrix multiplication over the trailing two dimensions,
// with leading batch dimensions broadcast.
//
// Backward:
//   - grad_a = grad @ bᵀ
//   - grad_b = aᵀ @ grad
//
// where ᵀ swaps the last two dimensions. Broadcast batch dimensions are
// summed away by the caller.
type MatMul struct{}

// Op returns OpMatMul.
func (MatMul) Op() Op { return OpMatMul }

// Forward computes a @ b and saves both operands.
func (MatMul) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpMatMul, inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	out, err := a.backend.MatMul(a.raw, b.raw)
	if err != nil {
		return nil, err
	}
	if err := Save(ctx, pairSaved{a, b}); err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward returns (grad @ bᵀ, aᵀ @ grad).
func (MatMul) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[pairSaved](ctx)
	if err != nil {
		return nil, err
	}
	be := grad.backend

	bT, err := transposeLast(s.b.raw)
	if err != nil {
		return nil, err
	}
	gradA, err := be.MatMul(grad.raw, bT)
	if err != nil {
		return nil, err
	}

	aT, err := transposeLast(s.a.raw)
	if err != nil {
		return nil, err
	}
	gradB, err := be.MatMul(aT, grad.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(gradA), grad.wrap(gradB)}, nil
}

func (MatMul) sealed() {}
