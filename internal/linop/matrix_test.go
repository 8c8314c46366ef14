package linop

import (
	"math/cmplx"
	"math/rand"

	"github.com/born-ml/linop/internal/tensor"
)

// matrix is a dense m x n kernel used to exercise the operator algebra.
type matrix struct {
	m, n    int
	data    []complex64 // row-major
	normals int
	freed   *int
}

func randMatrix(rng *rand.Rand, m, n int) *matrix {
	return &matrix{
		m:    m,
		n:    n,
		data: tensor.Randn(tensor.Shape{m, n}, tensor.CPU, rng).Values(),
	}
}

func (k *matrix) Forward(dst, src *tensor.Array) {
	x := src.Values()
	y := make([]complex64, k.m)
	for i := 0; i < k.m; i++ {
		for j := 0; j < k.n; j++ {
			y[i] += k.data[i*k.n+j] * x[j]
		}
	}
	dst.SetValues(y)
}

func (k *matrix) Adjoint(dst, src *tensor.Array) {
	y := src.Values()
	x := make([]complex64, k.n)
	for i := 0; i < k.m; i++ {
		for j := 0; j < k.n; j++ {
			x[j] += complex64(cmplx.Conj(complex128(k.data[i*k.n+j]))) * y[i]
		}
	}
	dst.SetValues(x)
}

func (k *matrix) op() *LinOp {
	op, err := New(tensor.NewIOVec(tensor.Shape{k.m}), tensor.NewIOVec(tensor.Shape{k.n}), k)
	if err != nil {
		panic(err)
	}
	return op
}

// normalMatrix adds a fused normal transform and a release hook.
type normalMatrix struct {
	*matrix
}

func (k normalMatrix) Normal(dst, src *tensor.Array) {
	k.normals++
	tmp := tensor.AllocLike(src, tensor.Shape{k.m})
	defer tmp.Release()
	k.Forward(tmp, src)
	k.Adjoint(dst, tmp)
}

func (k normalMatrix) Free() {
	if k.freed != nil {
		*k.freed++
	}
}

func (k normalMatrix) op() *LinOp {
	op, err := New(tensor.NewIOVec(tensor.Shape{k.m}), tensor.NewIOVec(tensor.Shape{k.n}), k)
	if err != nil {
		panic(err)
	}
	return op
}

func applyForward(op *LinOp, x *tensor.Array) *tensor.Array {
	y := tensor.AllocLike(x, op.Codomain().Dims)
	if err := op.Forward(y, x); err != nil {
		panic(err)
	}
	return y
}

func applyAdjoint(op *LinOp, y *tensor.Array) *tensor.Array {
	x := tensor.AllocLike(y, op.Domain().Dims)
	if err := op.Adjoint(x, y); err != nil {
		panic(err)
	}
	return x
}

func applyNormal(op *LinOp, x *tensor.Array) *tensor.Array {
	z := tensor.AllocLike(x, op.Domain().Dims)
	if err := op.Normal(z, x); err != nil {
		panic(err)
	}
	return z
}
