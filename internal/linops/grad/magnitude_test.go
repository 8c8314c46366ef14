package grad

import (
	"math"
	"testing"

	"github.com/born-ml/linop/internal/backend/cpu"
	"github.com/born-ml/linop/internal/linop"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude(t *testing.T) {
	// x[i][j] = i + 2j: forward differences are 1 and 2 away from the edges.
	x := tensor.Zeros(tensor.Shape{3, 3}, tensor.CPU)
	tensor.Iterate(x.Shape(), func(pos []int) {
		x.Set(complex(float32(pos[0]+2*pos[1]), 0), pos...)
	})
	m := tensor.Zeros(tensor.Shape{3, 3}, tensor.CPU)

	require.NoError(t, Magnitude(cpu.New(), tensor.Shape{3, 3}, 0b11, m, x))

	both := float32(math.Sqrt(5))
	want := []complex64{
		complex(both, 0), complex(both, 0), 1,
		complex(both, 0), complex(both, 0), 1,
		2, 2, 0,
	}
	got := m.Values()
	for i := range want {
		assert.InDelta(t, real(want[i]), real(got[i]), 1e-6, "index %d", i)
		assert.Zero(t, imag(got[i]))
	}
}

func TestMagnitude_Errors(t *testing.T) {
	be := cpu.New()
	x := tensor.Zeros(tensor.Shape{3, 3}, tensor.CPU)

	err := Magnitude(be, tensor.Shape{3, 3}, 0b100, x, x)
	assert.True(t, errors.Is(err, linop.ErrContract))

	err = Magnitude(be, tensor.Shape{3, 3}, 0b11, tensor.Zeros(tensor.Shape{3}, tensor.CPU), x)
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch))

	err = Magnitude(be, tensor.Shape{3, 3}, 0b11, x, tensor.Zeros(tensor.Shape{9}, tensor.CPU))
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch))
}
