package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ElementSize is the byte size of one complex64 element.
const ElementSize = 8

// Device represents the compute device an array was allocated for.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// arrayBuffer is a reference-counted shared buffer.
type arrayBuffer struct {
	data     []complex64
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newArrayBuffer creates a new reference-counted buffer with refCount = 1.
func newArrayBuffer(n int) *arrayBuffer {
	buf := &arrayBuffer{
		data: make([]complex64, n),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone operations).
func (b *arrayBuffer) addRef() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops the storage if it reaches 0.
func (b *arrayBuffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

// Array is a strided multi-dimensional array of complex64 values.
//
// Arrays returned by Slice are views: they share the parent's buffer
// without holding a reference and are only valid while the parent is.
type Array struct {
	buffer *arrayBuffer
	shape  Shape
	stride []int
	offset int
	device Device
	view   bool
}

// NewArray allocates a zero-filled contiguous array.
func NewArray(shape Shape, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Array{
		buffer: newArrayBuffer(shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: device,
	}, nil
}

// FromSlice creates an array from row-major data. The data is copied.
func FromSlice(data []complex64, shape Shape, device Device) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	a, err := NewArray(shape, device)
	if err != nil {
		return nil, err
	}
	copy(a.buffer.data, data)
	return a, nil
}

// AllocLike allocates a zero-filled contiguous array of the given shape on
// the same device as ref. It panics if shape is invalid.
func AllocLike(ref *Array, shape Shape) *Array {
	a, err := NewArray(shape, ref.device)
	if err != nil {
		panic(fmt.Sprintf("alloc: %v", err))
	}
	return a
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's strides in elements.
func (a *Array) Strides() []int {
	return a.stride
}

// IOVec returns the array's descriptor.
func (a *Array) IOVec() IOVec {
	return IOVec{Dims: a.shape.Clone(), Strides: append([]int(nil), a.stride...)}
}

// Device returns the device the array was allocated for.
func (a *Array) Device() Device {
	return a.device
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// Buffer returns the whole underlying storage. Element positions are
// Offset() plus the dot product of an index with Strides().
//
// WARNING: Direct access to underlying memory. Use with caution.
func (a *Array) Buffer() []complex64 {
	return a.buffer.data
}

// Offset returns the position of element (0, ..., 0) within Buffer.
func (a *Array) Offset() int {
	return a.offset
}

// IsContiguous reports whether the array has row-major contiguous layout.
func (a *Array) IsContiguous() bool {
	expected := 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] != 1 && a.stride[i] != expected {
			return false
		}
		expected *= a.shape[i]
	}
	return true
}

func (a *Array) index(indices []int) int {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(a.shape), len(indices)))
	}

	off := a.offset
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, a.shape[i]))
		}
		off += idx * a.stride[i]
	}
	return off
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (a *Array) At(indices ...int) complex64 {
	return a.buffer.data[a.index(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (a *Array) Set(value complex64, indices ...int) {
	a.buffer.data[a.index(indices)] = value
}

// Slice returns a view of the array with dimension dim fixed at i.
// The view has rank one lower than the array.
func (a *Array) Slice(dim, i int) *Array {
	if dim < 0 || dim >= len(a.shape) {
		panic(fmt.Sprintf("slice: dimension %d out of range for rank %d", dim, len(a.shape)))
	}
	if i < 0 || i >= a.shape[dim] {
		panic(fmt.Sprintf("slice: index %d out of bounds for dimension %d (size %d)", i, dim, a.shape[dim]))
	}

	shape := make(Shape, 0, len(a.shape)-1)
	stride := make([]int, 0, len(a.shape)-1)
	for d := range a.shape {
		if d == dim {
			continue
		}
		shape = append(shape, a.shape[d])
		stride = append(stride, a.stride[d])
	}

	return &Array{
		buffer: a.buffer,
		shape:  shape,
		stride: stride,
		offset: a.offset + i*a.stride[dim],
		device: a.device,
		view:   true,
	}
}

// Values returns a compact row-major copy of the array's elements.
func (a *Array) Values() []complex64 {
	out := make([]complex64, a.NumElements())
	if a.IsContiguous() {
		copy(out, a.buffer.data[a.offset:a.offset+len(out)])
		return out
	}
	n := 0
	Iterate(a.shape, func(pos []int) {
		off := a.offset
		for d, p := range pos {
			off += p * a.stride[d]
		}
		out[n] = a.buffer.data[off]
		n++
	})
	return out
}

// SetValues overwrites the array's elements from compact row-major data.
// Panics if the number of values does not match.
func (a *Array) SetValues(values []complex64) {
	if len(values) != a.NumElements() {
		panic(fmt.Sprintf("set values: got %d values for shape %v", len(values), a.shape))
	}
	if a.IsContiguous() {
		copy(a.buffer.data[a.offset:], values)
		return
	}
	n := 0
	Iterate(a.shape, func(pos []int) {
		off := a.offset
		for d, p := range pos {
			off += p * a.stride[d]
		}
		a.buffer.data[off] = values[n]
		n++
	})
}

// Clone creates a shallow copy that shares the buffer with reference counting.
func (a *Array) Clone() *Array {
	if !a.view {
		a.buffer.addRef()
	}
	return &Array{
		buffer: a.buffer,
		shape:  a.shape.Clone(),
		stride: append([]int(nil), a.stride...),
		offset: a.offset,
		device: a.device,
		view:   a.view,
	}
}

// Release decrements the buffer's reference count. Releasing a view is a no-op.
func (a *Array) Release() {
	if a.view {
		return
	}
	a.buffer.release()
}

// String returns a human-readable representation of the array.
func (a *Array) String() string {
	return fmt.Sprintf("Array[complex64]%v on %s", []int(a.shape), a.device)
}

// Iterate calls f for every index of shape in row-major order.
// The pos slice is reused between calls.
func Iterate(shape Shape, f func(pos []int)) {
	if shape.NumElements() == 0 {
		return
	}
	pos := make([]int, len(shape))
	for {
		f(pos)
		d := len(shape) - 1
		for ; d >= 0; d-- {
			pos[d]++
			if pos[d] < shape[d] {
				break
			}
			pos[d] = 0
		}
		if d < 0 {
			return
		}
	}
}
