package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// constInts lifts integer arguments (an axis, a permutation, a shape) into a
// constant tensor so they can travel through Apply.
func (t *Tensor) constInts(vals []int) (*Tensor, error) {
	data := make([]float64, len(vals))
	for i, v := range vals {
		data[i] = float64(v)
	}
	return FromSlice(data, tensor.Shape{len(data)}, t.backend)
}

// Neg returns -t.
func (t *Tensor) Neg() (*Tensor, error) {
	return Apply(Neg{}, t)
}

// Inv returns 1/t.
func (t *Tensor) Inv() (*Tensor, error) {
	return Apply(Inv{}, t)
}

// Add returns t + other with broadcasting.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	return Apply(Add{}, t, other)
}

// Sub returns t - other, computed as t + (-other).
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	neg, err := other.Neg()
	if err != nil {
		return nil, err
	}
	return t.Add(neg)
}

// Mul returns t * other with broadcasting.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	return Apply(Mul{}, t, other)
}

// Div returns t / other, computed as t * (1/other).
func (t *Tensor) Div(other *Tensor) (*Tensor, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, err
	}
	return t.Mul(inv)
}

// AddScalar returns t + v.
func (t *Tensor) AddScalar(v float64) (*Tensor, error) {
	s, err := Scalar(v, t.backend)
	if err != nil {
		return nil, err
	}
	return t.Add(s)
}

// MulScalar returns t * v.
func (t *Tensor) MulScalar(v float64) (*Tensor, error) {
	s, err := Scalar(v, t.backend)
	if err != nil {
		return nil, err
	}
	return t.Mul(s)
}

// Sigmoid returns 1 / (1 + exp(-t)).
func (t *Tensor) Sigmoid() (*Tensor, error) {
	return Apply(Sigmoid{}, t)
}

// ReLU returns max(0, t).
func (t *Tensor) ReLU() (*Tensor, error) {
	return Apply(ReLU{}, t)
}

// Log returns the natural logarithm of t.
func (t *Tensor) Log() (*Tensor, error) {
	return Apply(Log{}, t)
}

// Exp returns e^t.
func (t *Tensor) Exp() (*Tensor, error) {
	return Apply(Exp{}, t)
}

// Sum sums t along dim, keeping it with size 1. Without dim every element is
// summed into shape [1].
func (t *Tensor) Sum(dim ...int) (*Tensor, error) {
	return t.applyReduce(Sum{}, dim)
}

// All reduces t by logical AND along dim, or over every element without dim.
func (t *Tensor) All(dim ...int) (*Tensor, error) {
	return t.applyReduce(All{}, dim)
}

func (t *Tensor) applyReduce(fn Function, dim []int) (*Tensor, error) {
	switch len(dim) {
	case 0:
		return Apply(fn, t)
	case 1:
		d, err := t.constInts(dim)
		if err != nil {
			return nil, err
		}
		return Apply(fn, t, d)
	default:
		return nil, errors.Wrapf(tensor.ErrIndex, "%s takes at most one dimension, got %v", fn.Op(), dim)
	}
}

// Mean averages t along dim, or over every element without dim.
func (t *Tensor) Mean(dim ...int) (*Tensor, error) {
	s, err := t.Sum(dim...)
	if err != nil {
		return nil, err
	}
	n := t.Size()
	if len(dim) == 1 {
		n = t.Shape()[dim[0]]
	}
	return s.MulScalar(1 / float64(n))
}

// Lt returns 1 where t < other, else 0.
func (t *Tensor) Lt(other *Tensor) (*Tensor, error) {
	return Apply(LT{}, t, other)
}

// Gt returns 1 where t > other, else 0.
func (t *Tensor) Gt(other *Tensor) (*Tensor, error) {
	return Apply(LT{}, other, t)
}

// Eq returns 1 where t == other, else 0.
func (t *Tensor) Eq(other *Tensor) (*Tensor, error) {
	return Apply(EQ{}, t, other)
}

// IsClose returns 1 where |t - other| < 1e-2, else 0.
func (t *Tensor) IsClose(other *Tensor) (*Tensor, error) {
	return Apply(IsClose{}, t, other)
}

// Permute reorders dimensions: output dimension i is input dimension order[i].
//
// Example:
//
//	x: [2, 3, 4]
//	x.Permute(2, 0, 1) -> [4, 2, 3]
func (t *Tensor) Permute(order ...int) (*Tensor, error) {
	o, err := t.constInts(order)
	if err != nil {
		return nil, err
	}
	return Apply(Permute{}, t, o)
}

// View reinterprets t under shape. t must be contiguous; call Contiguous
// first after a Permute.
func (t *Tensor) View(shape ...int) (*Tensor, error) {
	s, err := t.constInts(shape)
	if err != nil {
		return nil, err
	}
	return Apply(View{}, t, s)
}

// Contiguous returns a copy of t laid out row-major.
func (t *Tensor) Contiguous() (*Tensor, error) {
	return Apply(Copy{}, t)
}

// MatMul returns the batched matrix product t @ other.
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) {
	return Apply(MatMul{}, t, other)
}
