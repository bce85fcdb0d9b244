// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/minigrad/internal/tensor"

// Backend defines the kernel table that every compute backend implements.
// Backends run element-wise, reduce and matrix-multiply kernels over raw
// storage; they never build graph structure.
//
// Implementations:
//   - backend/cpu: Pure Go, gonum for matrix products
//
// Example:
//
//	b := cpu.New()
//	x, _ := tensor.NewRaw([]float64{1, 2}, tensor.Shape{2})
//	y, _ := b.Exp(x)
type Backend = tensor.Backend
