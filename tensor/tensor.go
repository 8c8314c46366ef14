// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/linop/internal/tensor"
)

// MaxDims is the maximum array rank.
const MaxDims = tensor.MaxDims

// ElementSize is the size of one array element in bytes.
const ElementSize = tensor.ElementSize

// Shape represents the dimensions of an array.
type Shape = tensor.Shape

// IOVec describes the dimensions and strides an operator reads or writes.
type IOVec = tensor.IOVec

// Array is a strided multi-dimensional array of complex64 values.
type Array = tensor.Array

// Device identifies where an array's computations run.
type Device = tensor.Device

// Backend defines the array-math primitives operators are built from.
type Backend = tensor.Backend

// Devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewIOVec creates a descriptor with contiguous strides.
func NewIOVec(dims Shape) IOVec {
	return tensor.NewIOVec(dims)
}

// NewIOVec2 creates a descriptor with explicit strides.
func NewIOVec2(dims Shape, strides []int) (IOVec, error) {
	return tensor.NewIOVec2(dims, strides)
}

// NewArray allocates a zero-filled contiguous array.
func NewArray(shape Shape, device Device) (*Array, error) {
	return tensor.NewArray(shape, device)
}

// FromSlice creates an array from row-major data.
func FromSlice(data []complex64, shape Shape, device Device) (*Array, error) {
	return tensor.FromSlice(data, shape, device)
}

// AllocLike allocates a zero-filled array on the same device as ref.
func AllocLike(ref *Array, shape Shape) *Array {
	return tensor.AllocLike(ref, shape)
}

// Zeros creates a zero-filled array.
func Zeros(shape Shape, device Device) *Array {
	return tensor.Zeros(shape, device)
}

// Full creates an array filled with value.
func Full(shape Shape, value complex64, device Device) *Array {
	return tensor.Full(shape, value, device)
}

// Randn creates an array with standard normal real and imaginary parts.
func Randn(shape Shape, device Device, rng *rand.Rand) *Array {
	return tensor.Randn(shape, device, rng)
}

// Vdot returns sum(conj(a[i]) * b[i]).
func Vdot(a, b *Array) complex128 {
	return tensor.Vdot(a, b)
}

// Norm returns the L2 norm of a.
func Norm(a *Array) float64 {
	return tensor.Norm(a)
}

// Popcount returns the number of set bits in a dimension mask.
func Popcount(mask uint) int {
	return tensor.Popcount(mask)
}

// SelectedDims expands a dimension mask into ascending dimension indices.
func SelectedDims(mask uint) []int {
	return tensor.SelectedDims(mask)
}
