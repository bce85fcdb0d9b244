package autodiff_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/backend/cpu"
	"github.com/born-ml/minigrad/internal/tensor"
)

func TestFromNested(t *testing.T) {
	tests := []struct {
		name  string
		ls    any
		shape tensor.Shape
		want  []float64
	}{
		{"number", 2.5, tensor.Shape{1}, []float64{2.5}},
		{"int", 7, tensor.Shape{1}, []float64{7}},
		{"flat", []float64{1, 2, 3}, tensor.Shape{3}, []float64{1, 2, 3}},
		{"ints", []int{4, 5}, tensor.Shape{2}, []float64{4, 5}},
		{"matrix", [][]float64{{1, 2}, {3, 4}, {5, 6}}, tensor.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6}},
		{"any", []any{[]any{1, 2.5}, []any{3, float32(4)}}, tensor.Shape{2, 2}, []float64{1, 2.5, 3, 4}},
		{"cube", [][][]float64{{{1}, {2}}, {{3}, {4}}}, tensor.Shape{2, 2, 1}, []float64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := autodiff.FromNested(tt.ls, cpu.New())
			require.NoError(t, err)
			assert.Equal(t, tt.shape, x.Shape())
			assert.Equal(t, tt.want, x.Values())
			assert.False(t, x.RequiresGrad())
		})
	}
}

func TestFromNested_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ls   any
	}{
		{"jagged_rows", [][]float64{{1, 2}, {3}}},
		{"jagged_depth", []any{1, []float64{2}}},
		{"number_after_rows", []any{[]float64{1}, 2}},
		{"empty", []float64{}},
		{"empty_row", [][]float64{{}, {}}},
		{"string", "abc"},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := autodiff.FromNested(tt.ls, cpu.New())
			require.ErrorIs(t, err, tensor.ErrInvalidShape)
		})
	}
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	x, err := autodiff.FromSlice(data, tensor.Shape{2, 2}, cpu.New(), autodiff.RequiresGrad(true))
	require.NoError(t, err)
	assert.True(t, x.IsLeaf())

	data[0] = 100
	v, err := x.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = autodiff.FromSlice(data, tensor.Shape{3}, cpu.New())
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = autodiff.FromSlice(data, tensor.Shape{2, 0}, cpu.New())
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestZerosOnes(t *testing.T) {
	z, err := autodiff.Zeros(tensor.Shape{2, 3}, cpu.New())
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 6), z.Values())

	o, err := autodiff.Ones(tensor.Shape{2}, cpu.New(), autodiff.RequiresGrad(true))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, o.Values())
	assert.True(t, o.RequiresGrad())

	zz, err := o.Zeros(tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, o.Backend(), zz.Backend())
	assert.False(t, zz.RequiresGrad())

	_, err = autodiff.Zeros(tensor.Shape{}, cpu.New())
	require.ErrorIs(t, err, tensor.ErrInvalidShape)

	s, err := autodiff.Scalar(4, cpu.New())
	require.NoError(t, err)
	v, err := s.Item()
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestRand(t *testing.T) {
	a, err := autodiff.Rand(tensor.Shape{3, 3}, cpu.New(), autodiff.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	b, err := autodiff.Rand(tensor.Shape{3, 3}, cpu.New(), autodiff.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	assert.Equal(t, a.Values(), b.Values())
	for _, v := range a.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestMustTensor(t *testing.T) {
	assert.NotPanics(t, func() {
		autodiff.MustTensor(autodiff.Scalar(1, cpu.New()))
	})
	assert.Panics(t, func() {
		autodiff.MustTensor(autodiff.FromNested([][]float64{{1}, {}}, cpu.New()))
	})
}
