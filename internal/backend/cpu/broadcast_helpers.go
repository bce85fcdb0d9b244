package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/internal/tensor"
)

// mapKernel applies fn to every element of a and returns a packed result.
func (cpu *CPUBackend) mapKernel(name string, a *tensor.RawTensor, fn func(float64) float64) (*tensor.RawTensor, error) {
	out, err := tensor.Zeros(a.Shape())
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	dst := out.Storage()
	src := a.Storage()

	if a.IsContiguous() {
		cpu.forRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = fn(src[i])
			}
		})
		return out, nil
	}

	shape, strides := a.Shape(), a.Strides()
	cpu.forRange(len(dst), func(start, end int) {
		idx := make(tensor.Index, len(shape))
		for i := start; i < end; i++ {
			tensor.ToIndex(i, shape, idx)
			dst[i] = fn(src[tensor.IndexToPosition(idx, strides)])
		}
	})
	return out, nil
}

// zipKernel applies fn pairwise to a and b broadcast to a common shape.
func (cpu *CPUBackend) zipKernel(name string, a, b *tensor.RawTensor, fn func(x, y float64) float64) (*tensor.RawTensor, error) {
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	out, err := tensor.Zeros(outShape)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	dst := out.Storage()
	aSrc, bSrc := a.Storage(), b.Storage()

	// Fast path: same shape, both packed.
	if a.Shape().Equal(b.Shape()) && a.IsContiguous() && b.IsContiguous() {
		cpu.forRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = fn(aSrc[i], bSrc[i])
			}
		})
		return out, nil
	}

	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := a.Strides(), b.Strides()
	cpu.forRange(len(dst), func(start, end int) {
		outIdx := make(tensor.Index, len(outShape))
		aIdx := make(tensor.Index, len(aShape))
		bIdx := make(tensor.Index, len(bShape))
		for i := start; i < end; i++ {
			tensor.ToIndex(i, outShape, outIdx)
			tensor.BroadcastIndex(outIdx, outShape, aShape, aIdx)
			tensor.BroadcastIndex(outIdx, outShape, bShape, bIdx)
			dst[i] = fn(aSrc[tensor.IndexToPosition(aIdx, aStrides)], bSrc[tensor.IndexToPosition(bIdx, bStrides)])
		}
	})
	return out, nil
}

// forRange splits [0, n) across workers per the backend's parallel config.
func (cpu *CPUBackend) forRange(n int, f func(start, end int)) {
	parallel.ForRange(n, f, cpu.parallel)
}
