package autodiff

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Backward computes gradients of t with respect to every leaf it depends on
// and accumulates them into the leaves' Grad.
//
// With no argument t must hold a single element and the seed cotangent is 1.
// Otherwise grad[0] is used as the upstream cotangent and must match t's shape.
//
// Example:
//
//	x, _ := autodiff.FromSlice([]float64{3}, tensor.Shape{1}, b, autodiff.RequiresGrad(true))
//	y, _ := x.Mul(x)
//	_ = y.Backward()
//	x.Grad() // [6]
func (t *Tensor) Backward(grad ...*Tensor) error {
	var seed *Tensor
	switch {
	case len(grad) > 0 && grad[0] != nil:
		if !grad[0].Shape().Equal(t.Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch, "backward: gradient shape %v, tensor shape %v",
				grad[0].Shape(), t.Shape())
		}
		seed = grad[0]
	case t.Size() != 1:
		return errors.Wrapf(tensor.ErrShapeMismatch,
			"backward: tensor of shape %v is not a scalar, pass an explicit gradient", t.Shape())
	default:
		var err error
		seed, err = Ones(t.Shape(), t.backend)
		if err != nil {
			return err
		}
	}
	return Backpropagate(t, seed)
}

// TopologicalSort returns the tensors root depends on that take part in
// differentiation, ordered so every tensor precedes its inputs.
func TopologicalSort(root *Tensor) []*Tensor {
	visited := make(map[uuid.UUID]bool)
	order := make([]*Tensor, 0)

	var visit func(*Tensor)
	visit = func(t *Tensor) {
		if t == nil || t.IsConstant() || visited[t.id] {
			return
		}
		visited[t.id] = true
		if t.history != nil {
			for _, in := range t.history.inputs {
				visit(in)
			}
		}
		order = append(order, t)
	}
	visit(root)

	// Post-order puts inputs first; reverse it.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Backpropagate walks the graph behind root in reverse topological order,
// starting from the cotangent grad. Each History's rule Backward is called
// exactly once with the sum of every cotangent flowing into its output;
// leaves accumulate what reaches them into Grad.
func Backpropagate(root *Tensor, grad *Tensor) error {
	order := TopologicalSort(root)
	derivs := map[uuid.UUID]*Tensor{root.id: grad}

	for _, node := range order {
		d, ok := derivs[node.id]
		if !ok {
			continue
		}
		delete(derivs, node.id)

		if node.IsLeaf() {
			if err := node.accumulateGrad(d); err != nil {
				return err
			}
			continue
		}

		klog.V(4).InfoS("Backward", "op", node.history.fn.Op(), "node", node.id, "shape", node.Shape())
		grads, err := node.history.ChainRule(d)
		if err != nil {
			return err
		}
		for _, ig := range grads {
			existing, ok := derivs[ig.Input.id]
			if !ok {
				derivs[ig.Input.id] = ig.Grad
				continue
			}
			sum, err := existing.backend.Add(existing.raw, ig.Grad.raw)
			if err != nil {
				return errors.WithMessage(err, "accumulate cotangent")
			}
			derivs[ig.Input.id] = existing.wrap(sum)
		}
	}
	return nil
}

// expand reshapes the cotangent g to in's shape: it broadcasts g up to the
// common shape, then sums away every dimension that was broadcast in the
// forward pass.
//
// Example:
//
//	Forward:  a[3,1] + b[3,4] -> c[3,4]  (a broadcast along dim 1)
//	Backward: grad_c[3,4]     -> grad_a[3,1] (summed along dim 1)
func expand(in, g *Tensor) (*Tensor, error) {
	target := in.Shape()
	if g.Shape().Equal(target) {
		return g, nil
	}

	full, err := tensor.BroadcastShapes(target, g.Shape())
	if err != nil {
		return nil, errors.WithMessage(err, "expand cotangent")
	}

	b := g.backend
	cur := g.raw
	if !cur.Shape().Equal(full) {
		zeros, err := tensor.Zeros(full)
		if err != nil {
			return nil, err
		}
		if cur, err = b.Add(zeros, cur); err != nil {
			return nil, err
		}
	}
	if full.Equal(target) {
		return g.wrap(cur), nil
	}

	offset := len(full) - len(target)
	for dim := range full {
		if full[dim] == 1 {
			continue
		}
		if dim < offset || target[dim-offset] == 1 {
			if cur, err = b.SumReduce(cur, dim); err != nil {
				return nil, err
			}
		}
	}

	reshaped, err := tensor.NewRaw(cur.Storage(), target)
	if err != nil {
		return nil, errors.WithMessage(err, "expand cotangent")
	}
	return g.wrap(reshaped), nil
}
