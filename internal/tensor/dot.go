package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"
)

// Vdot returns the inner product sum(conj(a[i]) * b[i]) over two arrays of
// the same shape, accumulated in complex128.
func Vdot(a, b *Array) complex128 {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("vdot: shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}
	return cmplxs.Dot(widen(a.Values()), widen(b.Values()))
}

// Norm returns the L2 norm of the array.
func Norm(a *Array) float64 {
	return cmplxs.Norm(widen(a.Values()), 2)
}

// Distance returns the L2 norm of a - b.
func Distance(a, b *Array) float64 {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("distance: shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}
	return cmplxs.Distance(widen(a.Values()), widen(b.Values()), 2)
}

func widen(v []complex64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex128(x)
	}
	return out
}
