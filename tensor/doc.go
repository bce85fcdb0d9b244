// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the value container used by minigrad.
//
// # Overview
//
// A RawTensor is a strided view over flat float64 storage:
//   - Shape, Strides and Index describe layout and addressing
//   - several RawTensors may share one storage (Permute returns a view)
//   - NumPy-style broadcasting via BroadcastShapes and BroadcastIndex
//
// Backend is the kernel table that compute backends implement. The autodiff
// package builds differentiable tensors on top of it.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/minigrad/backend/cpu"
//	    "github.com/born-ml/minigrad/tensor"
//	)
//
//	func main() {
//	    b := cpu.New()
//	    x, _ := tensor.NewRaw([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    y, _ := b.Add(x, x)
//	    fmt.Println(y) // [[2.0000, 4.0000, 6.0000], [8.0000, 10.0000, 12.0000]]
//	}
//
// # Errors
//
// Shape problems are reported as ErrShapeMismatch or ErrInvalidShape, bad
// indices as ErrIndex. Match them with errors.Is.
package tensor
