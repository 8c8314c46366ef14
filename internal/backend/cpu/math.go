package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/linop/internal/parallel"
	"github.com/born-ml/linop/internal/tensor"
)

// forRange splits [0, n) across the backend's workers.
func (cpu *CPUBackend) forRange(n int, f func(start, end int)) {
	parallel.ForRange(n, f, cpu.parallel)
}

// Clear sets every element of x to zero.
func (cpu *CPUBackend) Clear(x *tensor.Array) {
	data := x.Buffer()

	// Fast path: contiguous storage
	if x.IsContiguous() {
		base := x.Offset()
		cpu.forRange(x.NumElements(), func(start, end int) {
			clear(data[base+start : base+end])
		})
		return
	}

	cpu.each(x.Shape(), []int{x.Offset()}, [][]int{x.Strides()}, func(c *cursor) {
		data[c.offs[0]] = 0
	})
}

// Copy copies src into dst.
func (cpu *CPUBackend) Copy(dst, src *tensor.Array) {
	checkSameShape("copy", dst, src)
	d, s := dst.Buffer(), src.Buffer()

	if allContiguous(dst, src) {
		do, so := dst.Offset(), src.Offset()
		cpu.forRange(dst.NumElements(), func(start, end int) {
			copy(d[do+start:do+end], s[so+start:so+end])
		})
		return
	}

	cpu.each(dst.Shape(), []int{dst.Offset(), src.Offset()}, [][]int{dst.Strides(), src.Strides()}, func(c *cursor) {
		d[c.offs[0]] = s[c.offs[1]]
	})
}

// Add computes dst = a + b element-wise. dst may alias a or b.
func (cpu *CPUBackend) Add(dst, a, b *tensor.Array) {
	checkSameShape("add", dst, a, b)
	d, x, y := dst.Buffer(), a.Buffer(), b.Buffer()

	if allContiguous(dst, a, b) {
		do, xo, yo := dst.Offset(), a.Offset(), b.Offset()
		cpu.forRange(dst.NumElements(), func(start, end int) {
			for i := start; i < end; i++ {
				d[do+i] = x[xo+i] + y[yo+i]
			}
		})
		return
	}

	cpu.each(dst.Shape(),
		[]int{dst.Offset(), a.Offset(), b.Offset()},
		[][]int{dst.Strides(), a.Strides(), b.Strides()},
		func(c *cursor) {
			d[c.offs[0]] = x[c.offs[1]] + y[c.offs[2]]
		})
}

// RSS computes the root of the sum of squared magnitudes of src along dim.
func (cpu *CPUBackend) RSS(dst, src *tensor.Array, dim int) {
	checkDim("rss", src, dim)
	reduced := dropDim(src.Shape(), dim)
	if !dst.Shape().Equal(reduced) {
		panic(fmt.Sprintf("rss: destination shape %v does not match %v", dst.Shape(), reduced))
	}

	n := src.Shape()[dim]
	step := src.Strides()[dim]
	d, s := dst.Buffer(), src.Buffer()

	cpu.each(reduced,
		[]int{dst.Offset(), src.Offset()},
		[][]int{dst.Strides(), dropDim(src.Strides(), dim)},
		func(c *cursor) {
			var sum float64
			off := c.offs[1]
			for k := 0; k < n; k++ {
				v := s[off+k*step]
				re, im := float64(real(v)), float64(imag(v))
				sum += re*re + im*im
			}
			d[c.offs[0]] = complex(float32(math.Sqrt(sum)), 0)
		})
}

func dropDim(s []int, dim int) tensor.Shape {
	out := make(tensor.Shape, 0, len(s)-1)
	out = append(out, s[:dim]...)
	return append(out, s[dim+1:]...)
}
