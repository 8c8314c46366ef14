package linop

import (
	"math/rand"
	"testing"

	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertClose(t *testing.T, want, got *tensor.Array) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape())
	assert.LessOrEqual(t, tensor.Distance(want, got), tol*(1+tensor.Norm(want)))
}

func TestChain_CompositionLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	a := randMatrix(rng, 4, 3).op()
	b := randMatrix(rng, 5, 4).op()
	defer a.Free()
	defer b.Free()

	c, err := Chain(a, b)
	require.NoError(t, err)
	defer c.Free()

	assert.Equal(t, tensor.Shape{3}, c.Domain().Dims)
	assert.Equal(t, tensor.Shape{5}, c.Codomain().Dims)

	x := tensor.Randn(tensor.Shape{3}, tensor.CPU, rng)
	y := tensor.Randn(tensor.Shape{5}, tensor.CPU, rng)

	assertClose(t, applyForward(b, applyForward(a, x)), applyForward(c, x))
	assertClose(t, applyAdjoint(a, applyAdjoint(b, y)), applyAdjoint(c, y))

	e, err := AdjointError(c, x, y)
	require.NoError(t, err)
	assert.Less(t, e, 1e-5)
}

func TestChain_FallbackNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randMatrix(rng, 4, 3).op()
	b := randMatrix(rng, 5, 4).op()
	defer a.Free()
	defer b.Free()

	c, err := Chain(a, b)
	require.NoError(t, err)
	defer c.Free()

	require.True(t, c.HasNormal())
	assert.False(t, c.HasPseudoInverse())

	x := tensor.Randn(tensor.Shape{3}, tensor.CPU, rng)
	e, err := NormalError(c, x)
	require.NoError(t, err)
	assert.Less(t, e, 1e-5)
}

func TestChain_FusedNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	a := randMatrix(rng, 4, 3).op()
	kb := normalMatrix{randMatrix(rng, 5, 4)}
	b := kb.op()
	defer a.Free()
	defer b.Free()

	c, err := Chain(a, b)
	require.NoError(t, err)
	defer c.Free()

	x := tensor.Randn(tensor.Shape{3}, tensor.CPU, rng)
	got := applyNormal(c, x)
	assert.Equal(t, 1, kb.normals, "fused normal must go through the second operator's normal")

	assertClose(t, applyAdjoint(c, applyForward(c, x)), got)
	assertClose(t, applyAdjoint(a, applyNormal(b, applyForward(a, x))), got)
}

func TestChain_FusedAndFallbackAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	ka := randMatrix(rng, 4, 3)
	kb := randMatrix(rng, 5, 4)

	a := ka.op()
	plain := kb.op()
	fused := normalMatrix{kb}.op()
	defer a.Free()
	defer plain.Free()
	defer fused.Free()

	c1, err := Chain(a, plain)
	require.NoError(t, err)
	defer c1.Free()
	c2, err := Chain(a, fused)
	require.NoError(t, err)
	defer c2.Free()

	x := tensor.Randn(tensor.Shape{3}, tensor.CPU, rng)
	assertClose(t, applyNormal(c1, x), applyNormal(c2, x))
}

func TestChain_Mismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	a := randMatrix(rng, 4, 3).op()
	b := randMatrix(rng, 5, 2).op()
	defer a.Free()
	defer b.Free()

	c, err := Chain(a, b)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContract))
}

func TestChain_Ownership(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	freedA, freedB := 0, 0

	ka := normalMatrix{randMatrix(rng, 3, 3)}
	ka.freed = &freedA
	kb := normalMatrix{randMatrix(rng, 3, 3)}
	kb.freed = &freedB

	a := ka.op()
	b := kb.op()

	c, err := Chain(a, b)
	require.NoError(t, err)

	// The chain outlives its parts.
	a.Free()
	b.Free()
	assert.Zero(t, freedA)
	assert.Zero(t, freedB)

	x := tensor.Randn(tensor.Shape{3}, tensor.CPU, rng)
	_ = applyNormal(c, x)

	c.Free()
	assert.Equal(t, 1, freedA)
	assert.Equal(t, 1, freedB)
}

func TestChain_FreeDoesNotReleaseParts(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	freed := 0
	ka := normalMatrix{randMatrix(rng, 2, 2)}
	ka.freed = &freed
	a := ka.op()

	c, err := Chain(a, a)
	require.NoError(t, err)
	c.Free()

	assert.Zero(t, freed)
	x := tensor.Randn(tensor.Shape{2}, tensor.CPU, rng)
	assert.NotPanics(t, func() { _ = applyForward(a, x) })

	a.Free()
	assert.Equal(t, 1, freed)
}

func TestChain_Nested(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	a := randMatrix(rng, 3, 2).op()
	b := normalMatrix{randMatrix(rng, 4, 3)}.op()
	d := randMatrix(rng, 2, 4).op()
	defer a.Free()
	defer b.Free()
	defer d.Free()

	ab, err := Chain(a, b)
	require.NoError(t, err)
	defer ab.Free()
	abd, err := Chain(ab, d)
	require.NoError(t, err)
	defer abd.Free()

	x := tensor.Randn(tensor.Shape{2}, tensor.CPU, rng)
	y := tensor.Randn(tensor.Shape{2}, tensor.CPU, rng)

	e, err := AdjointError(abd, x, y)
	require.NoError(t, err)
	assert.Less(t, e, 1e-5)

	e, err = NormalError(abd, x)
	require.NoError(t, err)
	assert.Less(t, e, 1e-5)
}
