package cpu

import "github.com/born-ml/linop/internal/tensor"

// FDiff computes the forward difference of src along dim.
// The last position along dim has no successor and is written as zero.
func (cpu *CPUBackend) FDiff(dst, src *tensor.Array, dim int) {
	checkSameShape("fdiff", dst, src)
	checkDim("fdiff", src, dim)

	last := src.Shape()[dim] - 1
	step := src.Strides()[dim]
	d, s := dst.Buffer(), src.Buffer()

	cpu.each(dst.Shape(),
		[]int{dst.Offset(), src.Offset()},
		[][]int{dst.Strides(), src.Strides()},
		func(c *cursor) {
			if c.pos[dim] < last {
				d[c.offs[0]] = s[c.offs[1]+step] - s[c.offs[1]]
			} else {
				d[c.offs[0]] = 0
			}
		})
}

// FDiffAdjoint applies the transpose of FDiff along dim.
func (cpu *CPUBackend) FDiffAdjoint(dst, src *tensor.Array, dim int) {
	checkSameShape("fdiff adjoint", dst, src)
	checkDim("fdiff adjoint", src, dim)

	last := src.Shape()[dim] - 1
	step := src.Strides()[dim]
	d, s := dst.Buffer(), src.Buffer()

	cpu.each(dst.Shape(),
		[]int{dst.Offset(), src.Offset()},
		[][]int{dst.Strides(), src.Strides()},
		func(c *cursor) {
			var v complex64
			if c.pos[dim] > 0 {
				v = s[c.offs[1]-step]
			}
			if c.pos[dim] < last {
				v -= s[c.offs[1]]
			}
			d[c.offs[0]] = v
		})
}
