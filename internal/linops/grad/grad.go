// Package grad implements the finite-difference gradient operator.
//
// For a domain of shape S (rank N) and a selection mask with K set bits,
// the operator maps x to the array of shape S+[K] whose i-th trailing slice
// is the forward difference of x along the i-th selected dimension, in
// ascending dimension order.
package grad

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/linop/internal/linop"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

type gradient struct {
	backend tensor.Backend
	dims    tensor.Shape // domain
	odims   tensor.Shape // dims + [K]
	sel     []int
}

// New creates the gradient operator over dims for the dimensions selected
// by flags. The codomain is dims with a trailing axis of extent
// popcount(flags).
func New(backend tensor.Backend, dims tensor.Shape, flags uint) (*linop.LinOp, error) {
	return NewWithCodomain(backend, Codomain(dims, flags), dims, flags)
}

// NewWithCodomain is New with a caller-supplied codomain, which must equal
// idims with a trailing axis of extent popcount(flags).
func NewWithCodomain(backend tensor.Backend, odims, idims tensor.Shape, flags uint) (*linop.LinOp, error) {
	g, err := newGradient(backend, odims, idims, flags)
	if err != nil {
		return nil, err
	}

	slog.Debug("grad: new operator", "dims", []int(idims), "flags", flags, "backend", backend.Name())
	return linop.New(tensor.NewIOVec(g.odims), tensor.NewIOVec(g.dims), g)
}

// Codomain returns dims with a trailing axis of extent popcount(flags).
func Codomain(dims tensor.Shape, flags uint) tensor.Shape {
	return dims.Append(tensor.Popcount(flags))
}

func newGradient(backend tensor.Backend, odims, idims tensor.Shape, flags uint) (*gradient, error) {
	if backend == nil {
		return nil, errors.Wrap(linop.ErrContract, "grad: nil backend")
	}
	if err := idims.Validate(); err != nil {
		return nil, errors.Wrapf(linop.ErrContract, "grad: %v", err)
	}

	n := len(idims)
	if flags>>uint(n) != 0 {
		return nil, errors.Wrapf(linop.ErrContract, "grad: flags %#b select dimensions beyond rank %d", flags, n)
	}
	if len(odims) != n+1 {
		return nil, errors.Wrapf(linop.ErrContract, "grad: codomain rank %d, want %d", len(odims), n+1)
	}
	if err := odims.Validate(); err != nil {
		return nil, errors.Wrapf(linop.ErrContract, "grad: codomain: %v", err)
	}
	if !odims[:n].Equal(idims) {
		return nil, errors.Wrapf(linop.ErrContract, "grad: codomain %v does not extend domain %v", odims, idims)
	}

	sel := tensor.SelectedDims(flags)
	if odims[n] != len(sel) {
		return nil, errors.Wrapf(linop.ErrContract, "grad: codomain trailing extent %d, want %d", odims[n], len(sel))
	}

	return &gradient{
		backend: backend,
		dims:    idims.Clone(),
		odims:   odims.Clone(),
		sel:     sel,
	}, nil
}

func (g *gradient) mustTrailing(a *tensor.Array) {
	s := a.Shape()
	if len(s) != len(g.odims) || s[len(g.dims)] != len(g.sel) {
		panic(fmt.Sprintf("grad: output shape %v, want trailing extent %d", s, len(g.sel)))
	}
}

// Forward writes the forward difference along the i-th selected dimension
// into the i-th trailing slice of dst.
func (g *gradient) Forward(dst, src *tensor.Array) {
	g.mustTrailing(dst)

	n := len(g.dims)
	for i, d := range g.sel {
		g.backend.FDiff(dst.Slice(n, i), src, d)
	}
}

// Adjoint sums the adjoint differences of every trailing slice of src.
func (g *gradient) Adjoint(dst, src *tensor.Array) {
	g.mustTrailing(src)

	tmp := tensor.AllocLike(dst, g.dims)
	defer tmp.Release()

	g.backend.Clear(dst)

	n := len(g.dims)
	for i, d := range g.sel {
		g.backend.FDiffAdjoint(tmp, src.Slice(n, i), d)
		g.backend.Add(dst, dst, tmp)
	}
}

// Normal computes Adjoint(Forward(src)).
// TODO: fuse into a per-dimension second-difference kernel.
func (g *gradient) Normal(dst, src *tensor.Array) {
	tmp := tensor.AllocLike(src, g.odims)
	defer tmp.Release()

	g.Forward(tmp, src)
	g.Adjoint(dst, tmp)
}
