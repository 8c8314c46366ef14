// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linops provides concrete linear operators.
//
// Example:
//
//	backend := cpu.New()
//
//	// Gradient over both dimensions of a 64x64 image.
//	g, err := linops.NewGrad(backend, tensor.Shape{64, 64}, 0b11)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Free()
//
//	y := tensor.Zeros(g.Codomain().Dims, tensor.CPU) // [64 64 2]
//	if err := g.Forward(y, x); err != nil {
//	    log.Fatal(err)
//	}
package linops

import (
	"github.com/born-ml/linop/internal/linops/grad"
	"github.com/born-ml/linop/linop"
	"github.com/born-ml/linop/tensor"
)

// NewGrad creates the finite-difference gradient over the dimensions of
// dims selected by flags. Its codomain is dims with a trailing axis of
// extent popcount(flags).
func NewGrad(backend tensor.Backend, dims tensor.Shape, flags uint) (*linop.LinOp, error) {
	return grad.New(backend, dims, flags)
}

// NewGradWithCodomain is NewGrad with an explicit codomain, which must
// match the derived one.
func NewGradWithCodomain(backend tensor.Backend, odims, idims tensor.Shape, flags uint) (*linop.LinOp, error) {
	return grad.NewWithCodomain(backend, odims, idims, flags)
}

// GradCodomain returns the codomain of the gradient over dims and flags.
func GradCodomain(dims tensor.Shape, flags uint) tensor.Shape {
	return grad.Codomain(dims, flags)
}

// GradMagnitude writes the root-sum-of-squares of the gradient of src into dst.
func GradMagnitude(backend tensor.Backend, dims tensor.Shape, flags uint, dst, src *tensor.Array) error {
	return grad.Magnitude(backend, dims, flags, dst, src)
}
