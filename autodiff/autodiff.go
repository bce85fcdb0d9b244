// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Every operation runs through Apply, which executes a rule's Forward on
// detached inputs and records a History on the result when any input
// requires gradients. Tensor.Backward then walks those histories in
// reverse topological order and accumulates gradients into the leaves.
//
// Example:
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/backend/cpu"
//	)
//
//	func main() {
//	    b := cpu.New()
//	    x, _ := autodiff.FromNested([]float64{1, 2, 3}, b, autodiff.RequiresGrad(true))
//	    y, _ := x.Sigmoid()
//	    s, _ := y.Sum()
//	    _ = s.Backward()
//	    fmt.Println(x.Grad()) // σ(x)(1-σ(x))
//	}
package autodiff

import (
	"math/rand"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/tensor"
)

// Tensor is a float64 tensor with optional gradient tracking.
type Tensor = autodiff.Tensor

// Context carries the no-grad flag and the values a rule's Forward saves
// for its Backward.
type Context = autodiff.Context

// Function is a forward/backward rule pair.
type Function = autodiff.Function

// Op identifies a rule.
type Op = autodiff.Op

// History links a tensor to the rule and inputs that produced it.
type History = autodiff.History

// InputGrad pairs an input with the cotangent flowing into it.
type InputGrad = autodiff.InputGrad

// CreateOption configures the construction helpers.
type CreateOption = autodiff.CreateOption

// Func is a function checked by GradCheck.
type Func = autodiff.Func

// GradCheckConfig controls GradCheckWith.
type GradCheckConfig = autodiff.GradCheckConfig

// Rules.
type (
	Neg     = autodiff.Neg
	Inv     = autodiff.Inv
	Add     = autodiff.Add
	Mul     = autodiff.Mul
	Sigmoid = autodiff.Sigmoid
	ReLU    = autodiff.ReLU
	Log     = autodiff.Log
	Exp     = autodiff.Exp
	Sum     = autodiff.Sum
	LT      = autodiff.LT
	EQ      = autodiff.EQ
	IsClose = autodiff.IsClose
	All     = autodiff.All
	Permute = autodiff.Permute
	View    = autodiff.View
	Copy    = autodiff.Copy
	MatMul  = autodiff.MatMul
)

// Rule identifiers.
const (
	OpNeg     = autodiff.OpNeg
	OpInv     = autodiff.OpInv
	OpAdd     = autodiff.OpAdd
	OpMul     = autodiff.OpMul
	OpSigmoid = autodiff.OpSigmoid
	OpReLU    = autodiff.OpReLU
	OpLog     = autodiff.OpLog
	OpExp     = autodiff.OpExp
	OpSum     = autodiff.OpSum
	OpLT      = autodiff.OpLT
	OpEQ      = autodiff.OpEQ
	OpIsClose = autodiff.OpIsClose
	OpAll     = autodiff.OpAll
	OpPermute = autodiff.OpPermute
	OpView    = autodiff.OpView
	OpCopy    = autodiff.OpCopy
	OpMatMul  = autodiff.OpMatMul
)

// Errors.
var (
	ErrNoGradient    = autodiff.ErrNoGradient
	ErrNotContiguous = autodiff.ErrNotContiguous
	ErrSavedValues   = autodiff.ErrSavedValues
	ErrArity         = autodiff.ErrArity
	ErrGradCheck     = autodiff.ErrGradCheck
)

// Apply runs fn over inputs and records a History when any input requires
// gradients.
func Apply(fn Function, inputs ...*Tensor) (*Tensor, error) {
	return autodiff.Apply(fn, inputs...)
}

// Functions returns every rule, indexed by Op.
func Functions() []Function {
	return autodiff.Functions()
}

// Lookup returns the rule identified by op.
func Lookup(op Op) (Function, error) {
	return autodiff.Lookup(op)
}

// NewContext creates a Context.
func NewContext(noGrad bool) *Context {
	return autodiff.NewContext(noGrad)
}

// Save stores s in ctx for the matching backward call.
func Save[S any](ctx *Context, s S) error {
	return autodiff.Save(ctx, s)
}

// Saved returns the tuple stored by Save.
func Saved[S any](ctx *Context) (S, error) {
	return autodiff.Saved[S](ctx)
}

// New wraps raw storage into an untracked Tensor on backend b.
func New(raw *tensor.RawTensor, b tensor.Backend) *Tensor {
	return autodiff.New(raw, b)
}

// RequiresGrad marks a new tensor as a gradient leaf.
func RequiresGrad(v bool) CreateOption {
	return autodiff.RequiresGrad(v)
}

// WithRand sets the random source used by Rand.
func WithRand(rng *rand.Rand) CreateOption {
	return autodiff.WithRand(rng)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.Zeros(shape, b, opts...)
}

// Ones creates a tensor filled with ones.
func Ones(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.Ones(shape, b, opts...)
}

// Full creates a tensor filled with value.
func Full(shape tensor.Shape, value float64, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.Full(shape, value, b, opts...)
}

// Rand creates a tensor of uniform samples in [0, 1).
func Rand(shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.Rand(shape, b, opts...)
}

// FromSlice creates a tensor of shape from row-major data.
func FromSlice(data []float64, shape tensor.Shape, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.FromSlice(data, shape, b, opts...)
}

// FromNested builds a tensor from a nested literal such as [][]float64.
func FromNested(ls any, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.FromNested(ls, b, opts...)
}

// Scalar creates a one-element tensor.
func Scalar(v float64, b tensor.Backend, opts ...CreateOption) (*Tensor, error) {
	return autodiff.Scalar(v, b, opts...)
}

// MustTensor panics if err is non-nil.
func MustTensor(t *Tensor, err error) *Tensor {
	return autodiff.MustTensor(t, err)
}

// DefaultGradCheckConfig returns the default gradient-check tolerances.
func DefaultGradCheckConfig() GradCheckConfig {
	return autodiff.DefaultGradCheckConfig()
}

// GradCheck compares analytic gradients of f against central differences.
func GradCheck(f Func, vals ...*Tensor) error {
	return autodiff.GradCheck(f, vals...)
}

// GradCheckWith is GradCheck with explicit tolerances.
func GradCheckWith(cfg GradCheckConfig, f Func, vals ...*Tensor) error {
	return autodiff.GradCheckWith(cfg, f, vals...)
}
