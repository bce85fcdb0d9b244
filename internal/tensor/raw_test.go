package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw_RowMajor(t *testing.T) {
	raw, err := NewRaw([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, Strides{3, 1}, raw.Strides())
	assert.Equal(t, 6, raw.Size())
	assert.Equal(t, 2, raw.Dims())
	assert.True(t, raw.IsContiguous())

	v, err := raw.Get(Index{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestNewRaw_StorageTooSmall(t *testing.T) {
	_, err := NewRaw([]float64{1, 2, 3}, Shape{2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewRaw_InvalidShape(t *testing.T) {
	_, err := NewRaw([]float64{1}, Shape{0})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = Zeros(Shape{})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestRawTensor_SetGet(t *testing.T) {
	raw, err := Zeros(Shape{2, 2})
	require.NoError(t, err)

	require.NoError(t, raw.Set(Index{0, 1}, 7))
	assert.Equal(t, []float64{0, 7, 0, 0}, raw.Storage())

	_, err = raw.Get(Index{2, 0})
	assert.ErrorIs(t, err, ErrIndex)

	_, err = raw.Get(Index{0})
	assert.ErrorIs(t, err, ErrIndex)
}

func TestRawTensor_Indices(t *testing.T) {
	raw, err := Zeros(Shape{2, 2})
	require.NoError(t, err)

	var got []Index
	for idx := range raw.Indices() {
		got = append(got, idx)
	}
	assert.Equal(t, []Index{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)
}

func TestRawTensor_Sample(t *testing.T) {
	raw, err := Zeros(Shape{3, 4, 5})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for range 100 {
		idx := raw.Sample(rng)
		_, err := raw.Position(idx)
		require.NoError(t, err)
	}
}

func TestRawTensor_Permute(t *testing.T) {
	raw, err := NewRaw([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	p, err := raw.Permute(1, 0)
	require.NoError(t, err)

	assert.Equal(t, Shape{3, 2}, p.Shape())
	assert.Equal(t, Strides{1, 3}, p.Strides())
	assert.False(t, p.IsContiguous())

	// Shares storage.
	v, err := p.Get(Index{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	back, err := p.Permute(1, 0)
	require.NoError(t, err)
	assert.Equal(t, raw.Shape(), back.Shape())
	assert.Equal(t, raw.Strides(), back.Strides())
	assert.True(t, back.IsContiguous())
}

func TestRawTensor_PermuteInvalid(t *testing.T) {
	raw, err := Zeros(Shape{2, 3})
	require.NoError(t, err)

	tests := []struct {
		name  string
		order []int
	}{
		{"too short", []int{0}},
		{"duplicate", []int{0, 0}},
		{"out of range", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := raw.Permute(tt.order...)
			assert.ErrorIs(t, err, ErrIndex)
		})
	}
}

func TestRawTensor_String(t *testing.T) {
	raw, err := NewRaw([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "[[1.0000, 2.0000], [3.0000, 4.0000]]", raw.String())
}
