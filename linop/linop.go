// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linop provides composable linear operators for iterative
// reconstruction.
//
// A linear operator bundles a forward transform A, its adjoint A^H, and
// optionally a normal transform A^H A and a regularized pseudo-inverse
// (A^H A + λI)^-1. Operators are built from a Kernel (or Funcs), shared
// with Clone, combined with Chain and released with Free.
//
// Example:
//
//	a, err := linop.Create(tensor.Shape{m}, tensor.Shape{n}, linop.Funcs{
//	    Forward: forward,
//	    Adjoint: adjoint,
//	})
//	if err != nil {
//	    return err
//	}
//	defer a.Free()
//
//	y := tensor.Zeros(tensor.Shape{m}, tensor.CPU)
//	if err := a.Forward(y, x); err != nil {
//	    return err
//	}
package linop

import (
	"context"

	"github.com/born-ml/linop/internal/linop"
	"github.com/born-ml/linop/internal/operator"
	"github.com/born-ml/linop/tensor"
)

// Errors returned by operator construction and checked application.
var (
	ErrShapeMismatch = linop.ErrShapeMismatch
	ErrContract      = linop.ErrContract
)

// LinOp is a linear operator.
type LinOp = linop.LinOp

// Kernel is the forward and adjoint pair every linear operator provides.
type Kernel = linop.Kernel

// Normaler is implemented by kernels with a fused normal transform.
type Normaler = linop.Normaler

// PseudoInverter is implemented by kernels with a pseudo-inverse.
type PseudoInverter = linop.PseudoInverter

// Freer is implemented by kernels holding resources.
type Freer = linop.Freer

// Funcs is the closure form of a kernel.
type Funcs = linop.Funcs

// ApplyFunc writes the image of src into dst.
type ApplyFunc = operator.ApplyFunc

// ApplyPFunc is an ApplyFunc parametrized by a scalar.
type ApplyPFunc = operator.ApplyPFunc

// Iter holds unchecked transforms for iterative solvers.
type Iter = linop.Iter

// Mode selects the transform ApplyBatch runs.
type Mode = linop.Mode

// Transforms available to ApplyBatch.
const (
	ModeForward = linop.ModeForward
	ModeAdjoint = linop.ModeAdjoint
	ModeNormal  = linop.ModeNormal
)

// New creates a linear operator from a kernel.
func New(codomain, domain tensor.IOVec, k Kernel) (*LinOp, error) {
	return linop.New(codomain, domain, k)
}

// Create creates a linear operator over contiguous arrays.
func Create(codomain, domain tensor.Shape, f Funcs) (*LinOp, error) {
	return linop.Create(codomain, domain, f)
}

// Create2 creates a linear operator from explicit descriptors.
func Create2(codomain, domain tensor.IOVec, f Funcs) (*LinOp, error) {
	return linop.Create2(codomain, domain, f)
}

// Chain returns the operator that applies a and then b.
func Chain(a, b *LinOp) (*LinOp, error) {
	return linop.Chain(a, b)
}

// AdjointError returns the relative error of <Ax, y> = <x, A^H y>.
func AdjointError(op *LinOp, x, y *tensor.Array) (float64, error) {
	return linop.AdjointError(op, x, y)
}

// NormalError returns the relative error of the normal transform against
// A^H A x.
func NormalError(op *LinOp, x *tensor.Array) (float64, error) {
	return linop.NormalError(op, x)
}

// ApplyBatch applies one transform to many arrays concurrently.
func ApplyBatch(ctx context.Context, op *LinOp, mode Mode, dsts, srcs []*tensor.Array, limit int) error {
	return linop.ApplyBatch(ctx, op, mode, dsts, srcs, limit)
}
