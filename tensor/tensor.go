// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/minigrad/internal/tensor"

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Strides is the number of storage positions to step per dimension.
type Strides = tensor.Strides

// Index is a multi-dimensional position, one entry per dimension.
type Index = tensor.Index

// Errors reported for invalid shapes and indices.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrIndex         = tensor.ErrIndex
)

// BroadcastShapes returns the NumPy-style broadcast of a and b.
//
// Example:
//
//	tensor.BroadcastShapes(Shape{3, 1}, Shape{4}) // [3 4]
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
