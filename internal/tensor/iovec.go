package tensor

import "fmt"

// IOVec describes the dimensions and strides an operator reads or writes.
// Strides are in elements.
type IOVec struct {
	Dims    Shape
	Strides []int
}

// NewIOVec creates a descriptor with contiguous row-major strides.
func NewIOVec(dims Shape) IOVec {
	return IOVec{
		Dims:    dims.Clone(),
		Strides: dims.ComputeStrides(),
	}
}

// NewIOVec2 creates a descriptor with explicit strides.
func NewIOVec2(dims Shape, strides []int) (IOVec, error) {
	if len(dims) != len(strides) {
		return IOVec{}, fmt.Errorf("iovec: %d dims but %d strides", len(dims), len(strides))
	}
	if err := dims.Validate(); err != nil {
		return IOVec{}, fmt.Errorf("iovec: %w", err)
	}
	return IOVec{
		Dims:    dims.Clone(),
		Strides: append([]int(nil), strides...),
	}, nil
}

// Rank returns the number of dimensions.
func (v IOVec) Rank() int {
	return len(v.Dims)
}

// Equal reports whether both dimensions and strides match.
func (v IOVec) Equal(other IOVec) bool {
	if !v.Dims.Equal(other.Dims) || len(v.Strides) != len(other.Strides) {
		return false
	}
	for i := range v.Strides {
		if v.Strides[i] != other.Strides[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the descriptor.
func (v IOVec) Clone() IOVec {
	return IOVec{
		Dims:    v.Dims.Clone(),
		Strides: append([]int(nil), v.Strides...),
	}
}

// String returns a human-readable representation.
func (v IOVec) String() string {
	return fmt.Sprintf("dims=%v strides=%v", []int(v.Dims), v.Strides)
}
