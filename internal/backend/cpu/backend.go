// Package cpu implements the CPU kernel table for float64 strided tensors.
//
// Element-wise kernels walk the output in row-major order and map every
// output index back onto (possibly broadcast, possibly permuted) input
// storage. Large loops are split across goroutines with internal/parallel;
// every kernel still returns only once its result is complete.
package cpu

import (
	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/internal/tensor"
)

// CPUBackend implements tensor.Backend in pure Go.
type CPUBackend struct {
	parallel parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the loop-splitting configuration used by the kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(b *CPUBackend) {
		b.parallel = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	b := &CPUBackend{
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

var _ tensor.Backend = (*CPUBackend)(nil)
