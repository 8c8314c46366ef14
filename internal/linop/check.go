package linop

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/linop/internal/tensor"
)

// AdjointError returns |<Ax, y> - <x, A^H y>| relative to |<Ax, y>|.
// x must match the domain and y the codomain.
func AdjointError(op *LinOp, x, y *tensor.Array) (float64, error) {
	ax := tensor.AllocLike(x, op.Codomain().Dims)
	defer ax.Release()
	ahy := tensor.AllocLike(y, op.Domain().Dims)
	defer ahy.Release()

	if err := op.Forward(ax, x); err != nil {
		return 0, err
	}
	if err := op.Adjoint(ahy, y); err != nil {
		return 0, err
	}

	lhs := tensor.Vdot(ax, y)
	rhs := tensor.Vdot(x, ahy)
	return relative(cmplx.Abs(lhs-rhs), cmplx.Abs(lhs)), nil
}

// NormalError returns ||N x - A^H A x|| relative to ||A^H A x||, where N is
// the operator's normal transform. It panics if op has no normal transform.
func NormalError(op *LinOp, x *tensor.Array) (float64, error) {
	dom := op.Domain().Dims

	ax := tensor.AllocLike(x, op.Codomain().Dims)
	defer ax.Release()
	ahax := tensor.AllocLike(x, dom)
	defer ahax.Release()
	nx := tensor.AllocLike(x, dom)
	defer nx.Release()

	if err := op.Forward(ax, x); err != nil {
		return 0, err
	}
	op.AdjointUnchecked(ahax, ax)
	if err := op.Normal(nx, x); err != nil {
		return 0, err
	}

	return relative(tensor.Distance(nx, ahax), tensor.Norm(ahax)), nil
}

func relative(diff, scale float64) float64 {
	if scale < math.SmallestNonzeroFloat32 {
		return diff
	}
	return diff / scale
}
