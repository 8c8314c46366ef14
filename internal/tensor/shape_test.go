package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_ComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{4, 4}, []int{4, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
		{Shape{3, 0, 2}, []int{0, 2, 1}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.shape.ComputeStrides()); diff != "" {
			t.Errorf("ComputeStrides(%v) mismatch (-want +got):\n%s", tt.shape, diff)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{0, 3}.Validate())
	assert.Error(t, Shape{2, -1}.Validate())
	assert.Error(t, make(Shape, MaxDims+1).Validate())
}

func TestShape_Append(t *testing.T) {
	s := Shape{4, 4}
	got := s.Append(2)

	assert.Equal(t, Shape{4, 4, 2}, got)
	assert.Equal(t, Shape{4, 4}, s, "receiver must not change")
}

func TestByteStrides(t *testing.T) {
	assert.Equal(t, []int{32, 8}, ByteStrides(Shape{3, 4}.ComputeStrides(), ElementSize))
}

func TestIOVec(t *testing.T) {
	v := NewIOVec(Shape{2, 3})
	if diff := cmp.Diff(IOVec{Dims: Shape{2, 3}, Strides: []int{3, 1}}, v); diff != "" {
		t.Errorf("NewIOVec mismatch (-want +got):\n%s", diff)
	}

	w, err := NewIOVec2(Shape{2, 3}, []int{1, 2})
	require.NoError(t, err)
	assert.False(t, v.Equal(w))
	assert.True(t, w.Equal(w.Clone()))

	_, err = NewIOVec2(Shape{2, 3}, []int{1})
	assert.Error(t, err)
}
