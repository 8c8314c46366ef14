package tensor

// Backend defines the array-math primitives that operators are built from.
// Backends write into caller-supplied destination arrays; dst must not
// alias any source unless stated otherwise.
//
// Implementations:
//   - CPU: Pure Go with goroutine fan-out
//   - WebGPU: WGSL compute shaders (windows)
type Backend interface {
	// Clear sets every element of x to zero.
	Clear(x *Array)

	// Copy copies src into dst. Shapes must match.
	Copy(dst, src *Array)

	// Add computes dst = a + b element-wise. dst may alias a or b.
	Add(dst, a, b *Array)

	// FDiff computes the forward difference along dim:
	// dst[i] = src[i+1] - src[i] for i < n-1, and dst[n-1] = 0.
	FDiff(dst, src *Array, dim int)

	// FDiffAdjoint applies the adjoint of FDiff along dim:
	// dst[i] = src[i-1] - src[i], where src[-1] and src[n-1] read as zero.
	FDiffAdjoint(dst, src *Array, dim int)

	// RSS computes the root of the sum of squared magnitudes of src along
	// dim. dst has the shape of src with dim removed.
	RSS(dst, src *Array, dim int)

	// Metadata
	Name() string
	Device() Device
}
