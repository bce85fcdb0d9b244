package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// LT is the broadcasting comparison a < b, producing 1 or 0.
//
// Backward: comparisons are piecewise constant, so both inputs get zeros of
// their own shape.
type LT struct{}

// Op returns OpLT.
func (LT) Op() Op { return OpLT }

// Forward computes a < b and saves both input shapes.
func (LT) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	return compare(OpLT, ctx, inputs, tensor.Backend.Lt)
}

// Backward returns zeros shaped like a and b.
func (LT) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	return zeroGrads(ctx, grad.backend)
}

func (LT) sealed() {}

// EQ is the broadcasting comparison a == b, producing 1 or 0.
//
// Backward: zeros of each input's shape.
type EQ struct{}

// Op returns OpEQ.
func (EQ) Op() Op { return OpEQ }

// Forward computes a == b and saves both input shapes.
func (EQ) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	return compare(OpEQ, ctx, inputs, tensor.Backend.Eq)
}

// Backward returns zeros shaped like a and b.
func (EQ) Backward(ctx *Context, grad *Tensor) ([]*Tensor, error) {
	return zeroGrads(ctx, grad.backend)
}

func (EQ) sealed() {}

// IsClose compares a and b within a fixed absolute tolerance of 1e-2,
// producing 1 or 0.
//
// IsClose has no gradient.
type IsClose struct{}

// Op returns OpIsClose.
func (IsClose) Op() Op { return OpIsClose }

// Forward computes |a - b| < 1e-2.
func (IsClose) Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error) {
	if err := want(OpIsClose, inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	out, err := a.backend.IsClose(a.raw, b.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

// Backward always fails with ErrNoGradient.
func (IsClose) Backward(_ *Context, _ *Tensor) ([]*Tensor, error) {
	return nil, errors.Wrapf(ErrNoGradient, "%s", OpIsClose)
}

func (IsClose) sealed() {}

type compareKernel func(be tensor.Backend, a, b *tensor.RawTensor) (*tensor.RawTensor, error)

func compare(op Op, ctx *Context, inputs []*Tensor, kernel compareKernel) (*Tensor, error) {
	if err := want(op, inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	if err := Save(ctx, shapesSaved{a.Shape(), b.Shape()}); err != nil {
		return nil, err
	}
	out, err := kernel(a.backend, a.raw, b.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(out), nil
}

func zeroGrads(ctx *Context, be tensor.Backend) ([]*Tensor, error) {
	s, err := Saved[shapesSaved](ctx)
	if err != nil {
		return nil, err
	}
	za, err := Zeros(s.a, be)
	if err != nil {
		return nil, err
	}
	zb, err := Zeros(s.b, be)
	if err != nil {
		return nil, err
	}
	return []*Tensor{za, zb}, nil
}
