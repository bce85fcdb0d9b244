// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/minigrad/internal/backend/cpu"
	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns the configuration New uses by default.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// WithParallel sets the kernel parallelism.
//
// Example:
//
//	b := cpu.New(cpu.WithParallel(cpu.ParallelConfig{Enabled: false}))
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/backend/cpu"
//	    "github.com/born-ml/minigrad/tensor"
//	)
//
//	func main() {
//	    b := cpu.New()
//	    x, _ := autodiff.Zeros(tensor.Shape{2, 3}, b)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
