// Package operator implements reference-counted transforms between strided
// arrays and their composition.
//
// An Operator maps arrays shaped like its domain to arrays shaped like its
// codomain. Operators are immutable; Ref hands out another reference to the
// same operator and Free drops one. The release hook passed to New runs
// when the last reference is dropped.
package operator

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/linop/internal/tensor"
)

// ApplyFunc writes the image of src into dst.
type ApplyFunc func(dst, src *tensor.Array)

// ApplyPFunc is an ApplyFunc parametrized by a scalar.
type ApplyPFunc func(lambda float32, dst, src *tensor.Array)

// refs counts live references and runs del once the count drops to zero.
type refs struct {
	count atomic.Int32
	del   func()
}

func (r *refs) init(del func()) {
	r.del = del
	r.count.Store(1)
}

func (r *refs) ref() {
	if r.count.Add(1) <= 1 {
		panic("operator: ref of released operator")
	}
}

func (r *refs) free() {
	n := r.count.Add(-1)
	switch {
	case n < 0:
		panic("operator: free of released operator")
	case n == 0 && r.del != nil:
		r.del()
	}
}

// Operator is a reference-counted linear or nonlinear transform.
type Operator struct {
	refs
	codomain tensor.IOVec
	domain   tensor.IOVec
	apply    ApplyFunc
}

// New creates an operator with one reference. del may be nil.
func New(codomain, domain tensor.IOVec, apply ApplyFunc, del func()) *Operator {
	if apply == nil {
		panic("operator: nil apply function")
	}
	op := &Operator{
		codomain: codomain.Clone(),
		domain:   domain.Clone(),
		apply:    apply,
	}
	op.init(del)
	return op
}

// Domain returns a copy of the input descriptor.
func (op *Operator) Domain() tensor.IOVec {
	return op.domain.Clone()
}

// Codomain returns a copy of the output descriptor.
func (op *Operator) Codomain() tensor.IOVec {
	return op.codomain.Clone()
}

// Apply checks dst and src against the codomain and domain, then applies.
func (op *Operator) Apply(dst, src *tensor.Array) error {
	if err := checkShapes(op.codomain, op.domain, dst, src); err != nil {
		return err
	}
	op.apply(dst, src)
	return nil
}

// ApplyUnchecked applies the operator without validating shapes.
func (op *Operator) ApplyUnchecked(dst, src *tensor.Array) {
	op.apply(dst, src)
}

// Ref returns op after adding a reference. Ref of nil returns nil.
func (op *Operator) Ref() *Operator {
	if op == nil {
		return nil
	}
	op.ref()
	return op
}

// Free drops one reference. Free of nil is a no-op.
func (op *Operator) Free() {
	if op == nil {
		return
	}
	op.free()
}

// String returns a human-readable representation.
func (op *Operator) String() string {
	return fmt.Sprintf("Operator[%v -> %v]", []int(op.domain.Dims), []int(op.codomain.Dims))
}

// POperator is a reference-counted transform with a scalar parameter.
type POperator struct {
	refs
	codomain tensor.IOVec
	domain   tensor.IOVec
	apply    ApplyPFunc
}

// NewP creates a parametrized operator with one reference. del may be nil.
func NewP(codomain, domain tensor.IOVec, apply ApplyPFunc, del func()) *POperator {
	if apply == nil {
		panic("operator: nil apply function")
	}
	op := &POperator{
		codomain: codomain.Clone(),
		domain:   domain.Clone(),
		apply:    apply,
	}
	op.init(del)
	return op
}

// Domain returns a copy of the input descriptor.
func (op *POperator) Domain() tensor.IOVec {
	return op.domain.Clone()
}

// Codomain returns a copy of the output descriptor.
func (op *POperator) Codomain() tensor.IOVec {
	return op.codomain.Clone()
}

// Apply checks dst and src against the codomain and domain, then applies.
func (op *POperator) Apply(lambda float32, dst, src *tensor.Array) error {
	if err := checkShapes(op.codomain, op.domain, dst, src); err != nil {
		return err
	}
	op.apply(lambda, dst, src)
	return nil
}

// ApplyUnchecked applies the operator without validating shapes.
func (op *POperator) ApplyUnchecked(lambda float32, dst, src *tensor.Array) {
	op.apply(lambda, dst, src)
}

// Ref returns op after adding a reference. Ref of nil returns nil.
func (op *POperator) Ref() *POperator {
	if op == nil {
		return nil
	}
	op.ref()
	return op
}

// Free drops one reference. Free of nil is a no-op.
func (op *POperator) Free() {
	if op == nil {
		return
	}
	op.free()
}
