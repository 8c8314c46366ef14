package linop

import (
	"github.com/born-ml/linop/internal/operator"
	"github.com/pkg/errors"
)

// Chain returns C = B A, the operator that applies a and then b.
//
// When b has a normal transform, C's normal is A^H (B^H B) A, which skips
// the pass through B's codomain. Otherwise it is C^H C. C never has a
// pseudo-inverse. C holds its own references to a and b; both may be
// freed independently of it.
func Chain(a, b *LinOp) (*LinOp, error) {
	if !a.Codomain().Dims.Equal(b.Domain().Dims) {
		return nil, errors.Wrapf(ErrContract, "linop: chain: codomain %v does not match domain %v",
			a.Codomain().Dims, b.Domain().Dims)
	}

	c := &LinOp{}
	fail := func(err error) (*LinOp, error) {
		c.forward.Free()
		c.adjoint.Free()
		return nil, err
	}

	var err error
	if c.forward, err = operator.Chain(a.forward, b.forward); err != nil {
		return fail(err)
	}
	if c.adjoint, err = operator.Chain(b.adjoint, a.adjoint); err != nil {
		return fail(err)
	}

	if b.normal == nil {
		c.normal, err = operator.Chain(c.forward, c.adjoint)
	} else {
		c.normal, err = fusedNormal(a, b)
	}
	if err != nil {
		return fail(err)
	}

	return c, nil
}

// fusedNormal builds A^H (B^H B) A.
func fusedNormal(a, b *LinOp) (*operator.Operator, error) {
	top, err := operator.Chain(b.normal, a.adjoint)
	if err != nil {
		return nil, err
	}
	defer top.Free()

	return operator.Chain(a.forward, top)
}
