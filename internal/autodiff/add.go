package autodiff

// Add is broadcasting element-wise addition: out = a + b.
//
// Backward: both inputs receive grad unchanged. Broadcast dimensions are
// summed away by the caller.
type Add struct{}

// Op returns OpAdd.
func (Add) Op() Op { return OpAdd }

// Forward computes a + b.
func (Add) Forward(_ *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpAdd, inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	out, err := a.backend.Add(a.raw, b.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward returns (grad, grad).
func (Add) Backward(_ *Context, grad *Tensor) ([]*Tensor, error) {
	return []*Tensor{grad, grad}, nil
}

func (Add) sealed() {}
