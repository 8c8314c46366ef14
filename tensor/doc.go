// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided complex arrays and the array-math
// backend contract used by linear operators.
//
// # Overview
//
// Arrays are row-major complex64 buffers with explicit strides. Slicing
// away one dimension produces a view that shares storage, which is how
// operators address one component of a stacked output.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/linop/backend/cpu"
//	    "github.com/born-ml/linop/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros(tensor.Shape{4, 4}, tensor.CPU)
//	    y := tensor.Zeros(tensor.Shape{4, 4}, tensor.CPU)
//	    backend.FDiff(y, x, 0)
//	}
//
// # Finite Differences
//
// FDiff writes src[i+1]-src[i] along a dimension and zero at its last
// position. FDiffAdjoint is its exact transpose.
//
// # Memory Management
//
// Arrays share buffers through reference counting. Clone adds a
// reference, Release drops one. Views returned by Slice hold no reference
// and are only valid while their parent is.
package tensor
