package autodiff

// Log is the element-wise natural logarithm.
//
// Backward: grad_a = grad / a.
type Log struct{}

// Op returns OpLog.
func (Log) Op() Op { return OpLog }

// Forward computes ln(a) and saves a.
func (Log) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpLog, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	if err := Save(ctx, inputSaved{a}); err != nil {
		return nil, err
	}
	out, err := a.backend.Log(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward computes grad / a.
func (Log) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	s, err := Saved[inputSaved](ctx)
	if err != nil {
		return nil, err
	}
	out, err := grad.backend.LogBack(s.x.raw, grad.raw)
	if err != nil {
		return nil, err
	}
	return []*Tensor{grad.wrap(out)}, nil
}

func (Log) sealed() {}
