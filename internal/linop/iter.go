package linop

import "github.com/born-ml/linop/internal/tensor"

// Iter holds unchecked transforms in the form iterative solvers consume.
// Normal and PseudoInverse are nil when the operator lacks them.
type Iter struct {
	Forward       func(dst, src *tensor.Array)
	Adjoint       func(dst, src *tensor.Array)
	Normal        func(dst, src *tensor.Array)
	PseudoInverse func(lambda float32, dst, src *tensor.Array)
}

// Iter returns solver adapters bound to op. They are valid until op is freed.
func (op *LinOp) Iter() Iter {
	it := Iter{
		Forward: op.ForwardUnchecked,
		Adjoint: op.AdjointUnchecked,
	}
	if op.HasNormal() {
		it.Normal = op.NormalUnchecked
	}
	if op.HasPseudoInverse() {
		it.PseudoInverse = op.PseudoInverseUnchecked
	}
	return it
}
