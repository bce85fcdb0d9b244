package autodiff

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Op identifies one rule of the closed rule set.
type Op int

// Supported rules.
const (
	OpNeg Op = iota
	OpInv
	OpAdd
	OpMul
	OpSigmoid
	OpReLU
	OpLog
	OpExp
	OpSum
	OpLT
	OpEQ
	OpIsClose
	OpAll
	OpPermute
	OpView
	OpCopy
	OpMatMul
)

var opNames = [...]string{
	OpNeg:     "Neg",
	OpInv:     "Inv",
	OpAdd:     "Add",
	OpMul:     "Mul",
	OpSigmoid: "Sigmoid",
	OpReLU:    "ReLU",
	OpLog:     "Log",
	OpExp:     "Exp",
	OpSum:     "Sum",
	OpLT:      "LT",
	OpEQ:      "EQ",
	OpIsClose: "IsClose",
	OpAll:     "All",
	OpPermute: "Permute",
	OpView:    "View",
	OpCopy:    "Copy",
	OpMatMul:  "MatMul",
}

// String returns the rule name.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Unknown"
	}
	return opNames[op]
}

// Differentiable reports whether the rule defines a backward.
func (op Op) Differentiable() bool {
	return op != OpAll && op != OpIsClose
}

// Function is a stateless forward/backward rule pair.
//
// Forward receives detached inputs, so anything it computes stays out of the
// recorded graph. Backward receives the Context populated by the matching
// Forward and the upstream cotangent, and returns one cotangent per Forward
// input, in input order. Non-tensor inputs (an axis, a permutation, a
// shape) get a numeric-zero placeholder, never nil.
//
// The rule set is closed: only the rules defined in this package implement
// Function.
type Function interface {
	Op() Op
	Forward(ctx *Context, inputs ...*Tensor) (*Tensor, error)
	Backward(ctx *Context, grad *Tensor) ([]*Tensor, error)

	sealed()
}

// Functions returns every rule, indexed by Op.
func Functions() []Function {
	return []Function{
		OpNeg:     Neg{},
		OpInv:     Inv{},
		OpAdd:     Add{},
		OpMul:     Mul{},
		OpSigmoid: Sigmoid{},
		OpReLU:    ReLU{},
		OpLog:     Log{},
		OpExp:     Exp{},
		OpSum:     Sum{},
		OpLT:      LT{},
		OpEQ:      EQ{},
		OpIsClose: IsClose{},
		OpAll:     All{},
		OpPermute: Permute{},
		OpView:    View{},
		OpCopy:    Copy{},
		OpMatMul:  MatMul{},
	}
}

// Lookup returns the rule identified by op.
func Lookup(op Op) (Function, error) {
	fns := Functions()
	if op < 0 || int(op) >= len(fns) {
		return nil, errors.Errorf("unknown rule %d", int(op))
	}
	return fns[op], nil
}

// History is the graph node attached to a rule's output: the rule, the
// Context its Forward populated, and the original (still tracked) inputs.
// Inputs are referenced, not owned.
type History struct {
	fn     Function
	ctx    *Context
	inputs []*Tensor
}

// Function returns the rule that produced the output.
func (h *History) Function() Function {
	return h.fn
}

// Context returns the Context populated by the forward call.
func (h *History) Context() *Context {
	return h.ctx
}

// Inputs returns the original inputs. Optional inputs may be nil.
func (h *History) Inputs() []*Tensor {
	return h.inputs
}

// InputGrad pairs an input with the cotangent flowing into it.
type InputGrad struct {
	Input *Tensor
	Grad  *Tensor
}

// ChainRule runs the rule's Backward with grad and returns the cotangent for
// every input that requires gradients, reshaped to that input's shape.
func (h *History) ChainRule(grad *Tensor) ([]InputGrad, error) {
	grads, err := h.fn.Backward(h.ctx, grad)
	if err != nil {
		return nil, err
	}
	if len(grads) != len(h.inputs) {
		return nil, errors.Wrapf(ErrArity, "%s backward returned %d cotangents for %d inputs",
			h.fn.Op(), len(grads), len(h.inputs))
	}

	out := make([]InputGrad, 0, len(h.inputs))
	for i, in := range h.inputs {
		if in == nil || in.IsConstant() {
			continue
		}
		g, err := expand(in, grads[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "%s backward, input %d", h.fn.Op(), i)
		}
		out = append(out, InputGrad{Input: in, Grad: g})
	}
	return out, nil
}

// Apply runs fn over inputs and records a History on the result when any
// input requires gradients.
//
// Forward always sees detached copies of the inputs, so intermediate work
// inside a rule can never add edges to the graph. Nil inputs are passed
// through for rules with optional arguments (Sum and All without an axis).
func Apply(fn Function, inputs ...*Tensor) (*Tensor, error) {
	detached := make([]*Tensor, len(inputs))
	needGrad := false
	for i, v := range inputs {
		if v == nil {
			continue
		}
		if v.RequiresGrad() {
			needGrad = true
		}
		detached[i] = v.Detach()
	}

	ctx := NewContext(!needGrad)
	out, err := fn.Forward(ctx, detached...)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", fn.Op())
	}
	if !needGrad {
		return out, nil
	}

	result := &Tensor{
		raw:          out.raw,
		backend:      out.backend,
		requiresGrad: true,
		history:      &History{fn: fn, ctx: ctx, inputs: slices.Clone(inputs)},
		id:           uuid.New(),
	}
	klog.V(5).InfoS("Attached graph node", "op", fn.Op(), "output", result.id, "shape", result.Shape())
	return result, nil
}
