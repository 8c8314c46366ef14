package operator

import (
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

// Chain returns the operator that applies a, then b. The result holds a
// reference to both; freeing it releases those references.
func Chain(a, b *Operator) (*Operator, error) {
	if !a.codomain.Dims.Equal(b.domain.Dims) {
		return nil, errors.Wrapf(ErrContract, "chain: output %v of first operator does not match input %v of second",
			a.codomain.Dims, b.domain.Dims)
	}

	a.Ref()
	b.Ref()

	mid := a.codomain.Dims
	apply := func(dst, src *tensor.Array) {
		tmp := tensor.AllocLike(src, mid)
		defer tmp.Release()

		a.apply(tmp, src)
		b.apply(dst, tmp)
	}
	release := func() {
		a.Free()
		b.Free()
	}

	return New(b.codomain, a.domain, apply, release), nil
}
