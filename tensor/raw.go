// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/minigrad/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and layout via Shape(), Strides(), IsContiguous()
//   - Element access via Get() and Set()
//   - Zero-copy dimension reordering via Permute()
//
// Most users should use autodiff.Tensor instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	t, _ := raw.Permute(1, 0) // shape [3 2], same storage
type RawTensor = tensor.RawTensor

// NewRaw creates a row-major RawTensor over storage. The storage is not copied.
func NewRaw(storage []float64, shape Shape) (*RawTensor, error) {
	return tensor.NewRaw(storage, shape)
}

// NewRawStrided creates a RawTensor with explicit strides over storage.
func NewRawStrided(storage []float64, shape Shape, strides Strides) (*RawTensor, error) {
	return tensor.NewRawStrided(storage, shape, strides)
}

// Zeros allocates a zero-filled RawTensor.
func Zeros(shape Shape) (*RawTensor, error) {
	return tensor.Zeros(shape)
}
