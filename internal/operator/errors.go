package operator

import (
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned by checked application when the
	// caller's arrays disagree with the operator's domain or codomain.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrContract is returned when operators are constructed or combined
	// in a way that violates their preconditions.
	ErrContract = errors.New("contract violation")
)

func checkShapes(codomain, domain tensor.IOVec, dst, src *tensor.Array) error {
	if !dst.Shape().Equal(codomain.Dims) {
		return errors.Wrapf(ErrShapeMismatch, "destination has shape %v, operator writes %v", dst.Shape(), codomain.Dims)
	}
	if !src.Shape().Equal(domain.Dims) {
		return errors.Wrapf(ErrShapeMismatch, "source has shape %v, operator reads %v", src.Shape(), domain.Dims)
	}
	return nil
}
