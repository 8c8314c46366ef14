package grad

import (
	"github.com/born-ml/linop/internal/linop"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

// Magnitude writes the root-sum-of-squares of the gradient of src over the
// selected dimensions into dst. src and dst both have shape dims.
func Magnitude(backend tensor.Backend, dims tensor.Shape, flags uint, dst, src *tensor.Array) error {
	g, err := newGradient(backend, Codomain(dims, flags), dims, flags)
	if err != nil {
		return err
	}
	if !src.Shape().Equal(dims) {
		return errors.Wrapf(linop.ErrShapeMismatch, "grad: magnitude: source has shape %v, want %v", src.Shape(), dims)
	}
	if !dst.Shape().Equal(dims) {
		return errors.Wrapf(linop.ErrShapeMismatch, "grad: magnitude: destination has shape %v, want %v", dst.Shape(), dims)
	}

	tmp := tensor.AllocLike(src, g.odims)
	defer tmp.Release()

	g.Forward(tmp, src)
	backend.RSS(dst, tmp, len(dims))
	return nil
}
