// Package linop implements linear operators: a forward transform, its
// adjoint and optional normal and pseudo-inverse transforms over declared
// domain and codomain descriptors.
//
// All transforms of an operator share one state. The state's release hook
// runs exactly once, after every transform of every clone has been freed.
package linop

import (
	"fmt"

	"github.com/born-ml/linop/internal/operator"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

// Re-exported error sentinels.
var (
	ErrShapeMismatch = operator.ErrShapeMismatch
	ErrContract      = operator.ErrContract
)

// Kernel is the forward and adjoint pair every linear operator provides.
type Kernel interface {
	Forward(dst, src *tensor.Array)
	Adjoint(dst, src *tensor.Array)
}

// Normaler is implemented by kernels with a fused normal transform A^H A.
type Normaler interface {
	Normal(dst, src *tensor.Array)
}

// PseudoInverter is implemented by kernels that can apply (A^H A + λI)^-1.
type PseudoInverter interface {
	PseudoInverse(lambda float32, dst, src *tensor.Array)
}

// Freer is implemented by kernels holding resources. Free is called once,
// after the last transform referencing the kernel is freed.
type Freer interface {
	Free()
}

// Funcs is the closure form of a kernel. Forward and Adjoint are required.
type Funcs struct {
	Forward       operator.ApplyFunc
	Adjoint       operator.ApplyFunc
	Normal        operator.ApplyFunc
	PseudoInverse operator.ApplyPFunc
	Del           func()
}

// LinOp is a linear operator. Use Clone to share it and Free to drop it.
type LinOp struct {
	forward  *operator.Operator
	adjoint  *operator.Operator
	normal   *operator.Operator
	pinverse *operator.POperator
}

// Create2 creates a linear operator from explicit descriptors.
func Create2(codomain, domain tensor.IOVec, f Funcs) (*LinOp, error) {
	if f.Forward == nil {
		return nil, errors.Wrap(ErrContract, "linop: forward transform is required")
	}
	if f.Adjoint == nil {
		return nil, errors.Wrap(ErrContract, "linop: adjoint transform is required")
	}
	if err := codomain.Dims.Validate(); err != nil {
		return nil, errors.Wrapf(ErrContract, "linop: codomain: %v", err)
	}
	if err := domain.Dims.Validate(); err != nil {
		return nil, errors.Wrapf(ErrContract, "linop: domain: %v", err)
	}

	slots := newPayload(4, f.Del)

	op := &LinOp{
		forward: operator.New(codomain, domain, f.Forward, slots[0].release),
		adjoint: operator.New(domain, codomain, f.Adjoint, slots[1].release),
	}

	if f.Normal != nil {
		op.normal = operator.New(domain, domain, f.Normal, slots[2].release)
	} else {
		slots[2].release()
	}

	if f.PseudoInverse != nil {
		op.pinverse = operator.NewP(domain, codomain, f.PseudoInverse, slots[3].release)
	} else {
		slots[3].release()
	}

	return op, nil
}

// Create creates a linear operator over contiguous arrays.
func Create(codomain, domain tensor.Shape, f Funcs) (*LinOp, error) {
	return Create2(tensor.NewIOVec(codomain), tensor.NewIOVec(domain), f)
}

// New creates a linear operator from a kernel. Normal, PseudoInverse and
// Free are used when k implements Normaler, PseudoInverter or Freer.
func New(codomain, domain tensor.IOVec, k Kernel) (*LinOp, error) {
	if k == nil {
		return nil, errors.Wrap(ErrContract, "linop: nil kernel")
	}

	f := Funcs{
		Forward: k.Forward,
		Adjoint: k.Adjoint,
	}
	if n, ok := k.(Normaler); ok {
		f.Normal = n.Normal
	}
	if p, ok := k.(PseudoInverter); ok {
		f.PseudoInverse = p.PseudoInverse
	}
	if fr, ok := k.(Freer); ok {
		f.Del = fr.Free
	}
	return Create2(codomain, domain, f)
}

// Domain returns the input descriptor of the forward transform.
func (op *LinOp) Domain() tensor.IOVec {
	return op.forward.Domain()
}

// Codomain returns the output descriptor of the forward transform.
func (op *LinOp) Codomain() tensor.IOVec {
	return op.forward.Codomain()
}

// HasNormal reports whether the operator has a normal transform.
func (op *LinOp) HasNormal() bool {
	return op.normal != nil
}

// HasPseudoInverse reports whether the operator has a pseudo-inverse.
func (op *LinOp) HasPseudoInverse() bool {
	return op.pinverse != nil
}

// Forward computes dst = A src.
func (op *LinOp) Forward(dst, src *tensor.Array) error {
	return op.forward.Apply(dst, src)
}

// ForwardUnchecked is Forward without shape validation.
func (op *LinOp) ForwardUnchecked(dst, src *tensor.Array) {
	op.forward.ApplyUnchecked(dst, src)
}

// Adjoint computes dst = A^H src.
func (op *LinOp) Adjoint(dst, src *tensor.Array) error {
	return op.adjoint.Apply(dst, src)
}

// AdjointUnchecked is Adjoint without shape validation.
func (op *LinOp) AdjointUnchecked(dst, src *tensor.Array) {
	op.adjoint.ApplyUnchecked(dst, src)
}

// Normal computes dst = A^H A src. It panics if the operator has no
// normal transform.
func (op *LinOp) Normal(dst, src *tensor.Array) error {
	op.mustNormal()
	return op.normal.Apply(dst, src)
}

// NormalUnchecked is Normal without shape validation.
func (op *LinOp) NormalUnchecked(dst, src *tensor.Array) {
	op.mustNormal()
	op.normal.ApplyUnchecked(dst, src)
}

// PseudoInverse computes dst = (A^H A + λI)^-1 src. It panics if the
// operator has no pseudo-inverse.
func (op *LinOp) PseudoInverse(lambda float32, dst, src *tensor.Array) error {
	op.mustPseudoInverse()
	return op.pinverse.Apply(lambda, dst, src)
}

// PseudoInverseUnchecked is PseudoInverse without shape validation.
func (op *LinOp) PseudoInverseUnchecked(lambda float32, dst, src *tensor.Array) {
	op.mustPseudoInverse()
	op.pinverse.ApplyUnchecked(lambda, dst, src)
}

func (op *LinOp) mustNormal() {
	if op.normal == nil {
		panic("linop: operator has no normal transform")
	}
}

func (op *LinOp) mustPseudoInverse() {
	if op.pinverse == nil {
		panic("linop: operator has no pseudo-inverse")
	}
}

// Clone returns a new handle sharing op's transforms.
func (op *LinOp) Clone() *LinOp {
	return &LinOp{
		forward:  op.forward.Ref(),
		adjoint:  op.adjoint.Ref(),
		normal:   op.normal.Ref(),
		pinverse: op.pinverse.Ref(),
	}
}

// Free releases the handle. Freeing a handle twice panics.
func (op *LinOp) Free() {
	if op.forward == nil {
		panic("linop: operator freed twice")
	}
	op.forward.Free()
	op.adjoint.Free()
	op.normal.Free()
	op.pinverse.Free()
	*op = LinOp{}
}

// String returns a human-readable representation.
func (op *LinOp) String() string {
	return fmt.Sprintf("LinOp[%v -> %v, normal=%t, pinv=%t]",
		[]int(op.Domain().Dims), []int(op.Codomain().Dims), op.HasNormal(), op.HasPseudoInverse())
}
