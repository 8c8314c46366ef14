// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Kernels walk arbitrary strides and split their index space across
// goroutines once an array is large enough to amortize the fan-out.
package cpu

import (
	internalcpu "github.com/born-ml/linop/internal/backend/cpu"
	"github.com/born-ml/linop/internal/parallel"
	"github.com/born-ml/linop/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend using one worker per CPU.
//
// Example:
//
//	backend := cpu.New()
//	op, err := grad.New(backend, tensor.Shape{64, 64}, 0b11)
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend limited to n workers.
// n <= 0 means one worker per CPU; n == 1 disables fan-out.
func NewWithWorkers(n int) *Backend {
	return internalcpu.NewWithConfig(parallel.WithWorkers(n))
}
