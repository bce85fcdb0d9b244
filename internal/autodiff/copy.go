package autodiff

// Copy materialises a into fresh contiguous storage.
//
// Backward: identity.
type Copy struct{}

// Op returns OpCopy.
func (Copy) Op() Op { return OpCopy }

// Forward copies a.
func (Copy) Forward(_ *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpCopy, inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	out, err := a.backend.Copy(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward returns grad unchanged.
func (Copy) Backward(_ *Context, grad *Tensor) ([]*Tensor, error) {
	return []*Tensor{grad}, nil
}

func (Copy) sealed() {}
