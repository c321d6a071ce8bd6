// Copyright 2025 Cinder ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor. A Shape with zero dimensions
// is unknown, awaiting inference.
type Shape = tensor.Shape

// Unknown returns a shape that inference still has to fill in.
func Unknown() Shape {
	return tensor.Unknown()
}

// RawTensor is a view over a pre-allocated contiguous memory region plus a
// shape descriptor.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// View wraps an externally allocated buffer without copying.
func View(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.View(data, shape, dtype, device)
}
