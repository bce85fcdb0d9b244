// Package autodiff implements reverse-mode automatic differentiation over
// strided float64 tensors.
//
// Architecture:
//   - Function: a stateless forward/backward rule pair (Neg, Add, MatMul, ...)
//   - Apply: the single entry point every rule runs through; it detaches the
//     inputs, runs Forward with a fresh Context, and attaches a History to
//     the result when any input requires gradients
//   - Context: per-call record of the no-grad flag and the typed tuple that
//     Forward saves for Backward
//   - Backpropagate: reverse topological walk that calls each History's
//     rule Backward and accumulates leaf gradients
//
// Usage:
//
//	b := cpu.New()
//	x, _ := autodiff.FromSlice([]float64{2}, tensor.Shape{1}, b, autodiff.RequiresGrad(true))
//	y, _ := x.Mul(x) // y = x²
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = 4.0
package autodiff

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Tensor is a multidimensional value with optional gradient tracking.
//
// Tensors are immutable by convention. A Tensor that requires gradients
// is either a leaf (no History; gradients accumulate into Grad) or the
// output of a rule (History links it to the rule and inputs that made it).
type Tensor struct {
	raw          *tensor.RawTensor
	backend      tensor.Backend
	requiresGrad bool
	grad         *Tensor
	history      *History
	id           uuid.UUID
}

// New wraps raw storage into an untracked Tensor on backend b.
func New(raw *tensor.RawTensor, b tensor.Backend) *Tensor {
	return &Tensor{
		raw:     raw,
		backend: b,
		id:      uuid.New(),
	}
}

// wrap puts a kernel result on the same backend as t.
func (t *Tensor) wrap(raw *tensor.RawTensor) *Tensor {
	return New(raw, t.backend)
}

// ID returns the tensor's unique identifier.
func (t *Tensor) ID() uuid.UUID {
	return t.id
}

// Raw returns the underlying RawTensor.
func (t *Tensor) Raw() *tensor.RawTensor {
	return t.raw
}

// Backend returns the kernel table the tensor computes with.
func (t *Tensor) Backend() tensor.Backend {
	return t.backend
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() tensor.Shape {
	return t.raw.Shape()
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return t.raw.Size()
}

// Dims returns the number of dimensions.
func (t *Tensor) Dims() int {
	return t.raw.Dims()
}

// RequiresGrad reports whether gradients flow to this tensor.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// SetRequiresGrad toggles gradient tracking. Turning it off also drops the
// tensor's History.
func (t *Tensor) SetRequiresGrad(v bool) {
	t.requiresGrad = v
	if !v {
		t.history = nil
	}
}

// History returns the graph node that produced t, or nil for leaves and
// constants.
func (t *Tensor) History() *History {
	return t.history
}

// IsLeaf reports whether t requires gradients and was not produced by a rule.
func (t *Tensor) IsLeaf() bool {
	return t.requiresGrad && t.history == nil
}

// IsConstant reports whether t takes no part in differentiation.
func (t *Tensor) IsConstant() bool {
	return !t.requiresGrad
}

// Grad returns the accumulated gradient, or nil if none was computed.
func (t *Tensor) Grad() *Tensor {
	return t.grad
}

// ZeroGrad clears the accumulated gradient.
func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

// accumulateGrad adds g into the leaf's gradient slot.
func (t *Tensor) accumulateGrad(g *Tensor) error {
	if t.grad == nil {
		t.grad = g.Detach()
		return nil
	}
	sum, err := t.backend.Add(t.grad.raw, g.raw)
	if err != nil {
		return errors.WithMessage(err, "accumulate gradient")
	}
	t.grad = t.wrap(sum)
	return nil
}

// Detach returns a new tensor that shares the same storage but has no
// History and does not require gradients.
func (t *Tensor) Detach() *Tensor {
	return New(t.raw, t.backend)
}

// Item returns the single element of a one-element tensor.
func (t *Tensor) Item() (float64, error) {
	if t.Size() != 1 {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch, "item: tensor of shape %v has %d elements", t.Shape(), t.Size())
	}
	idx := make(tensor.Index, t.Dims())
	return t.raw.Get(idx)
}

// At returns the element at idx.
func (t *Tensor) At(idx ...int) (float64, error) {
	return t.raw.Get(tensor.Index(idx))
}

// Values returns the elements in row-major order as a new slice.
func (t *Tensor) Values() []float64 {
	storage, strides := t.raw.Storage(), t.raw.Strides()
	out := make([]float64, 0, t.Size())
	for idx := range t.raw.Indices() {
		out = append(out, storage[tensor.IndexToPosition(idx, strides)])
	}
	return out
}

// Zeros returns a zero-filled constant of shape on t's backend.
func (t *Tensor) Zeros(shape tensor.Shape) (*Tensor, error) {
	return Zeros(shape, t.backend)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s, shape=%v)", t.raw, t.Shape())
}
