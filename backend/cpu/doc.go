// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor kernels.
//
// # Overview
//
// This package implements the tensor.Backend kernel table with:
//   - Pure Go implementation (no CGO)
//   - Strided map, zip and reduce kernels over float64 storage
//   - NumPy-compatible broadcasting
//   - Batched matrix multiplication on gonum
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/backend/cpu"
//	)
//
//	func main() {
//	    b := cpu.New()
//	    x, _ := autodiff.FromNested([][]float64{{1, 2}, {3, 4}}, b)
//	    y, _ := x.MatMul(x)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Kernels split large inputs
// across goroutines and return only once the result is complete.
package cpu
