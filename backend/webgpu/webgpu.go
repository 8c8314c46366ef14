// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend.
//
// Kernels run as WGSL compute shaders on windows. On other platforms New
// returns ErrUnavailable.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	op, err := grad.New(gpu, tensor.Shape{256, 256}, 0b11)
package webgpu

import (
	internalwebgpu "github.com/born-ml/linop/internal/backend/webgpu"
	"github.com/born-ml/linop/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ErrUnavailable is returned by New when no WebGPU device can be opened.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// New creates a WebGPU backend. Call Release when done.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be opened.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
