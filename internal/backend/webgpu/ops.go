//go:build windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/linop/internal/tensor"
)

// Clear sets every element of x to zero. Runs on the host.
func (b *Backend) Clear(x *tensor.Array) {
	x.SetValues(make([]complex64, x.NumElements()))
}

// Copy copies src into dst. Runs on the host.
func (b *Backend) Copy(dst, src *tensor.Array) {
	mustSameShape("Copy", dst, src)
	dst.SetValues(src.Values())
}

// Add performs element-wise complex addition on GPU.
func (b *Backend) Add(dst, a, other *tensor.Array) {
	mustSameShape("Add", dst, a, other)
	out, err := b.runKernel("cadd", caddShader,
		[][]complex64{a.Values(), other.Values()},
		dst.NumElements(),
		kernelParams{size: u32(dst.NumElements())})
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	dst.SetValues(out)
}

// FDiff computes the forward difference along dim on GPU.
func (b *Backend) FDiff(dst, src *tensor.Array, dim int) {
	mustSameShape("FDiff", dst, src)
	p := axisParams("FDiff", src.Shape(), dim)
	p.size = u32(src.NumElements())

	out, err := b.runKernel("fdiff", fdiffShader, [][]complex64{src.Values()}, dst.NumElements(), p)
	if err != nil {
		panic("webgpu: FDiff: " + err.Error())
	}
	dst.SetValues(out)
}

// FDiffAdjoint applies the transpose of FDiff along dim on GPU.
func (b *Backend) FDiffAdjoint(dst, src *tensor.Array, dim int) {
	mustSameShape("FDiffAdjoint", dst, src)
	p := axisParams("FDiffAdjoint", src.Shape(), dim)
	p.size = u32(src.NumElements())

	out, err := b.runKernel("fdiff_adjoint", fdiffAdjointShader, [][]complex64{src.Values()}, dst.NumElements(), p)
	if err != nil {
		panic("webgpu: FDiffAdjoint: " + err.Error())
	}
	dst.SetValues(out)
}

// RSS reduces src along dim by root-sum-of-squares on GPU.
func (b *Backend) RSS(dst, src *tensor.Array, dim int) {
	p := axisParams("RSS", src.Shape(), dim)
	if dst.NumElements()*int(p.n) != src.NumElements() {
		panic(fmt.Sprintf("webgpu: RSS: destination shape %v does not match source %v", dst.Shape(), src.Shape()))
	}
	p.size = u32(dst.NumElements())

	out, err := b.runKernel("rss", rssShader, [][]complex64{src.Values()}, dst.NumElements(), p)
	if err != nil {
		panic("webgpu: RSS: " + err.Error())
	}
	dst.SetValues(out)
}

// axisParams derives the extent and inner element count of dim in a
// compact row-major layout of shape.
func axisParams(op string, shape tensor.Shape, dim int) kernelParams {
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("webgpu: %s: dimension %d out of range for shape %v", op, dim, shape))
	}
	inner := 1
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	return kernelParams{n: u32(shape[dim]), inner: u32(inner)}
}

func mustSameShape(op string, arrays ...*tensor.Array) {
	for _, a := range arrays[1:] {
		if !a.Shape().Equal(arrays[0].Shape()) {
			panic(fmt.Sprintf("webgpu: %s: shape mismatch: %v vs %v", op, arrays[0].Shape(), a.Shape()))
		}
	}
}

//nolint:gosec // G115: array extents are validated non-negative and fit in u32 for GPU dispatch
func u32(n int) uint32 {
	return uint32(n)
}
