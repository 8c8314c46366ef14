package linop

import (
	"math/rand"
	"testing"

	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityFuncs(del func()) Funcs {
	copyFn := func(dst, src *tensor.Array) { dst.SetValues(src.Values()) }
	return Funcs{
		Forward: copyFn,
		Adjoint: copyFn,
		Normal:  copyFn,
		PseudoInverse: func(lambda float32, dst, src *tensor.Array) {
			vals := src.Values()
			for i := range vals {
				vals[i] /= complex(1+lambda, 0)
			}
			dst.SetValues(vals)
		},
		Del: del,
	}
}

func TestCreate_RequiresForwardAndAdjoint(t *testing.T) {
	shape := tensor.Shape{2}
	f := identityFuncs(nil)

	noForward := f
	noForward.Forward = nil
	_, err := Create(shape, shape, noForward)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContract))

	noAdjoint := f
	noAdjoint.Adjoint = nil
	_, err = Create(shape, shape, noAdjoint)
	assert.True(t, errors.Is(err, ErrContract))

	_, err = Create(tensor.Shape{-1}, shape, f)
	assert.True(t, errors.Is(err, ErrContract))

	_, err = New(tensor.NewIOVec(shape), tensor.NewIOVec(shape), nil)
	assert.True(t, errors.Is(err, ErrContract))
}

func TestCreate2_Descriptors(t *testing.T) {
	cod, err := tensor.NewIOVec2(tensor.Shape{2, 3}, []int{1, 2})
	require.NoError(t, err)
	dom := tensor.NewIOVec(tensor.Shape{6})

	f := identityFuncs(nil)
	op, err := Create2(cod, dom, f)
	require.NoError(t, err)
	defer op.Free()

	assert.True(t, op.Codomain().Equal(cod))
	assert.True(t, op.Domain().Equal(dom))
	assert.True(t, op.HasNormal())
	assert.True(t, op.HasPseudoInverse())
}

func TestLinOp_Apply(t *testing.T) {
	op, err := Create(tensor.Shape{2}, tensor.Shape{2}, identityFuncs(nil))
	require.NoError(t, err)
	defer op.Free()

	src, _ := tensor.FromSlice([]complex64{2, 4}, tensor.Shape{2}, tensor.CPU)
	dst := tensor.Zeros(tensor.Shape{2}, tensor.CPU)

	require.NoError(t, op.Forward(dst, src))
	assert.Equal(t, []complex64{2, 4}, dst.Values())

	require.NoError(t, op.PseudoInverse(1, dst, src))
	assert.Equal(t, []complex64{1, 2}, dst.Values())

	op.NormalUnchecked(dst, src)
	assert.Equal(t, []complex64{2, 4}, dst.Values())
}

func TestLinOp_ShapeMismatch(t *testing.T) {
	k := randMatrix(rand.New(rand.NewSource(1)), 3, 2)
	op := k.op()
	defer op.Free()

	x := tensor.Zeros(tensor.Shape{2}, tensor.CPU)
	bad := tensor.Zeros(tensor.Shape{2}, tensor.CPU)

	err := op.Forward(bad, x)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	assert.False(t, errors.Is(err, ErrContract))

	err = op.Adjoint(x, tensor.Zeros(tensor.Shape{4}, tensor.CPU))
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestLinOp_AbsentTransformsPanic(t *testing.T) {
	k := randMatrix(rand.New(rand.NewSource(1)), 2, 2)
	op := k.op()
	defer op.Free()

	assert.False(t, op.HasNormal())
	assert.False(t, op.HasPseudoInverse())

	x := tensor.Zeros(tensor.Shape{2}, tensor.CPU)
	assert.Panics(t, func() { _ = op.Normal(x, x) })
	assert.Panics(t, func() { op.NormalUnchecked(x, x) })
	assert.Panics(t, func() { _ = op.PseudoInverse(0.1, x, x) })
	assert.Panics(t, func() { op.PseudoInverseUnchecked(0.1, x, x) })
}

func TestNew_DetectsOptionalMethods(t *testing.T) {
	freed := 0
	k := normalMatrix{randMatrix(rand.New(rand.NewSource(2)), 3, 3)}
	k.freed = &freed

	op := k.op()
	assert.True(t, op.HasNormal())
	assert.False(t, op.HasPseudoInverse())

	op.Free()
	assert.Equal(t, 1, freed)
}

func TestLinOp_SharedDeletionOnce(t *testing.T) {
	// Three handles (op and two clones) released in every order.
	for _, order := range permutations(3) {
		deleted := 0
		op, err := Create(tensor.Shape{1}, tensor.Shape{1}, identityFuncs(func() { deleted++ }))
		require.NoError(t, err)

		handles := []*LinOp{op, op.Clone(), op.Clone()}
		for i, h := range order {
			handles[h].Free()
			if i < len(order)-1 {
				assert.Zero(t, deleted, "order %v", order)
			}
		}
		assert.Equal(t, 1, deleted, "order %v", order)
	}
}

func TestLinOp_PartialTransformsDeleteOnce(t *testing.T) {
	deleted := 0
	f := identityFuncs(func() { deleted++ })
	f.Normal = nil
	f.PseudoInverse = nil

	op, err := Create(tensor.Shape{1}, tensor.Shape{1}, f)
	require.NoError(t, err)
	assert.Zero(t, deleted, "unused transforms must not trigger deletion")

	c := op.Clone()
	op.Free()
	assert.Zero(t, deleted)
	c.Free()
	assert.Equal(t, 1, deleted)
}

func TestLinOp_DoubleFree(t *testing.T) {
	op, err := Create(tensor.Shape{1}, tensor.Shape{1}, identityFuncs(nil))
	require.NoError(t, err)
	op.Free()
	assert.Panics(t, func() { op.Free() })
}

func TestLinOp_AdjointIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	op := randMatrix(rng, 5, 4).op()
	defer op.Free()

	x := tensor.Randn(tensor.Shape{4}, tensor.CPU, rng)
	y := tensor.Randn(tensor.Shape{5}, tensor.CPU, rng)

	e, err := AdjointError(op, x, y)
	require.NoError(t, err)
	assert.Less(t, e, 1e-5)
}

func TestLinOp_Iter(t *testing.T) {
	op, err := Create(tensor.Shape{2}, tensor.Shape{2}, identityFuncs(nil))
	require.NoError(t, err)
	defer op.Free()

	it := op.Iter()
	require.NotNil(t, it.Normal)
	require.NotNil(t, it.PseudoInverse)

	src, _ := tensor.FromSlice([]complex64{3, 6}, tensor.Shape{2}, tensor.CPU)
	dst := tensor.Zeros(tensor.Shape{2}, tensor.CPU)
	it.PseudoInverse(2, dst, src)
	assert.Equal(t, []complex64{1, 2}, dst.Values())

	plain := randMatrix(rand.New(rand.NewSource(1)), 2, 2).op()
	defer plain.Free()
	assert.Nil(t, plain.Iter().Normal)
	assert.Nil(t, plain.Iter().PseudoInverse)
}

func TestLinOp_String(t *testing.T) {
	op := randMatrix(rand.New(rand.NewSource(1)), 3, 2).op()
	defer op.Free()
	assert.Equal(t, "LinOp[[2] -> [3], normal=false, pinv=false]", op.String())
}
