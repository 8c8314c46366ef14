package cpu

import "github.com/born-ml/linop/internal/tensor"

const maxOperands = 3

// cursor walks a shape in row-major order while tracking the element
// offset of up to three strided operands.
type cursor struct {
	shape   tensor.Shape
	strides [maxOperands][]int
	n       int
	pos     [tensor.MaxDims]int
	offs    [maxOperands]int
}

// newCursor positions a cursor at linear index start of shape.
func newCursor(shape tensor.Shape, start int, offsets []int, strides ...[]int) *cursor {
	c := &cursor{shape: shape, n: len(strides)}
	for k := range strides {
		c.strides[k] = strides[k]
		c.offs[k] = offsets[k]
	}

	rem := start
	for d := len(shape) - 1; d >= 0; d-- {
		if shape[d] == 0 {
			continue
		}
		c.pos[d] = rem % shape[d]
		rem /= shape[d]
		for k := 0; k < c.n; k++ {
			c.offs[k] += c.pos[d] * c.strides[k][d]
		}
	}
	return c
}

// next advances to the following index.
func (c *cursor) next() {
	for d := len(c.shape) - 1; d >= 0; d-- {
		c.pos[d]++
		for k := 0; k < c.n; k++ {
			c.offs[k] += c.strides[k][d]
		}
		if c.pos[d] < c.shape[d] {
			return
		}
		for k := 0; k < c.n; k++ {
			c.offs[k] -= c.strides[k][d] * c.shape[d]
		}
		c.pos[d] = 0
	}
}

// each runs f over every index of shape, in parallel chunks.
func (cpu *CPUBackend) each(shape tensor.Shape, offsets []int, strides [][]int, f func(c *cursor)) {
	cpu.forRange(shape.NumElements(), func(start, end int) {
		c := newCursor(shape, start, offsets, strides...)
		for i := start; i < end; i++ {
			f(c)
			c.next()
		}
	})
}
