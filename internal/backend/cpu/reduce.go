package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minigrad/internal/tensor"
)

// SumReduce sums x along dim, keeping dim with size 1.
//
// Example:
//
//	x: [2, 3, 4]
//	SumReduce(x, 1) -> [2, 1, 4]
func (cpu *CPUBackend) SumReduce(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	return cpu.reduceKernel("sum_reduce", x, dim, floats.Sum)
}

// AllReduce multiplies x along dim, keeping dim with size 1.
// Over 0/1 values this is a logical AND.
func (cpu *CPUBackend) AllReduce(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	return cpu.reduceKernel("all_reduce", x, dim, floats.Prod)
}

// reduceKernel gathers the values along dim for every output position and
// folds them with fn.
func (cpu *CPUBackend) reduceKernel(name string, x *tensor.RawTensor, dim int, fn func([]float64) float64) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		return nil, errors.Wrapf(tensor.ErrIndex, "%s: dimension %d out of range for %dD tensor", name, dim, len(shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1
	out, err := tensor.Zeros(outShape)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	dst := out.Storage()
	src := x.Storage()
	strides := x.Strides()
	n := shape[dim]
	step := strides[dim]

	cpu.forRange(len(dst), func(start, end int) {
		idx := make(tensor.Index, len(outShape))
		vals := make([]float64, n)
		for i := start; i < end; i++ {
			tensor.ToIndex(i, outShape, idx)
			base := tensor.IndexToPosition(idx, strides)
			for j := range vals {
				vals[j] = src[base+j*step]
			}
			dst[i] = fn(vals)
		}
	})
	return out, nil
}
