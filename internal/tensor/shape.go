package tensor

import "fmt"

// MaxDims is the highest rank an Array may have.
const MaxDims = 16

// Shape represents the dimension extents of an array.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions >= 0, rank <= MaxDims).
func (s Shape) Validate() error {
	if len(s) > MaxDims {
		return fmt.Errorf("rank %d exceeds maximum of %d", len(s), MaxDims)
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Append returns a copy of the shape with one extra trailing dimension.
func (s Shape) Append(extent int) Shape {
	out := make(Shape, len(s), len(s)+1)
	copy(out, s)
	return append(out, extent)
}

// ComputeStrides calculates row-major strides for the shape, in elements.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ByteStrides converts element strides into byte strides for the given element size.
func ByteStrides(strides []int, elemSize int) []int {
	out := make([]int, len(strides))
	for i, st := range strides {
		out[i] = st * elemSize
	}
	return out
}
