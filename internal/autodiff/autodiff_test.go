package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/backend/cpu"
	"github.com/born-ml/minigrad/internal/tensor"
)

func from(t *testing.T, ls any, opts ...autodiff.CreateOption) *autodiff.Tensor {
	t.Helper()
	x, err := autodiff.FromNested(ls, cpu.New(), opts...)
	require.NoError(t, err)
	return x
}

func leaf(t *testing.T, ls any) *autodiff.Tensor {
	t.Helper()
	return from(t, ls, autodiff.RequiresGrad(true))
}

func TestTensor_Accessors(t *testing.T) {
	x := from(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, 6, x.Size())
	assert.Equal(t, 2, x.Dims())
	assert.Equal(t, "CPU", x.Backend().Name())
	assert.True(t, x.IsConstant())
	assert.False(t, x.IsLeaf())

	v, err := x.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = x.At(2, 0)
	require.ErrorIs(t, err, tensor.ErrIndex)

	_, err = x.Item()
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	assert.Contains(t, x.String(), "shape=[2 3]")
}

func TestTensor_Detach(t *testing.T) {
	x := leaf(t, []float64{1, 2})
	y, err := x.Mul(x)
	require.NoError(t, err)
	require.NotNil(t, y.History())

	d := y.Detach()
	assert.False(t, d.RequiresGrad())
	assert.Nil(t, d.History())
	assert.NotEqual(t, y.ID(), d.ID())
	assert.Equal(t, y.Values(), d.Values())
}

func TestTensor_SetRequiresGradDropsHistory(t *testing.T) {
	x := leaf(t, []float64{1})
	y, err := x.Exp()
	require.NoError(t, err)
	require.NotNil(t, y.History())

	y.SetRequiresGrad(false)
	assert.Nil(t, y.History())
	assert.True(t, y.IsConstant())
}

func TestApply_NoGradInputs(t *testing.T) {
	a := from(t, []float64{1, 2})
	b := from(t, []float64{3, 4})

	out, err := autodiff.Apply(autodiff.Mul{}, a, b)
	require.NoError(t, err)
	assert.Nil(t, out.History())
	assert.False(t, out.RequiresGrad())
	assert.Equal(t, []float64{3, 8}, out.Values())
}

func TestApply_AttachesHistory(t *testing.T) {
	a := leaf(t, []float64{1, 2})
	b := from(t, []float64{3, 4})

	out, err := autodiff.Apply(autodiff.Mul{}, a, b)
	require.NoError(t, err)
	require.NotNil(t, out.History())
	assert.True(t, out.RequiresGrad())
	assert.False(t, out.IsLeaf())

	h := out.History()
	assert.Equal(t, autodiff.OpMul, h.Function().Op())
	require.Len(t, h.Inputs(), 2)
	assert.Same(t, a, h.Inputs()[0])
	assert.Same(t, b, h.Inputs()[1])
	assert.False(t, h.Context().NoGrad())
	assert.NotNil(t, h.Context().SavedValues())
}

func TestApply_HistoryOwnsInputs(t *testing.T) {
	x := leaf(t, []float64{2, 3})
	y := from(t, []float64{5, 7})
	w := leaf(t, []float64{1, 1})

	ins := []*autodiff.Tensor{x, y}
	z, err := autodiff.Apply(autodiff.Mul{}, ins...)
	require.NoError(t, err)
	ins[0] = w

	assert.Same(t, x, z.History().Inputs()[0])

	s, err := z.Sum()
	require.NoError(t, err)
	require.NoError(t, s.Backward())

	require.NotNil(t, x.Grad())
	assert.Equal(t, []float64{5, 7}, x.Grad().Values())
	assert.Nil(t, w.Grad())
}

func TestApply_Arity(t *testing.T) {
	a := from(t, []float64{1})

	_, err := autodiff.Apply(autodiff.Add{}, a)
	require.ErrorIs(t, err, autodiff.ErrArity)

	_, err = autodiff.Apply(autodiff.Neg{}, a, a)
	require.ErrorIs(t, err, autodiff.ErrArity)
}

func TestApply_ShapeMismatch(t *testing.T) {
	a := from(t, []float64{1, 2, 3})
	b := from(t, []float64{1, 2})

	_, err := a.Add(b)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestFunctions(t *testing.T) {
	fns := autodiff.Functions()
	require.Len(t, fns, 17)
	for i, fn := range fns {
		assert.Equal(t, autodiff.Op(i), fn.Op())

		got, err := autodiff.Lookup(fn.Op())
		require.NoError(t, err)
		assert.Equal(t, fn, got)
	}

	assert.Equal(t, "Sigmoid", autodiff.OpSigmoid.String())
	assert.Equal(t, "MatMul", autodiff.OpMatMul.String())
	assert.Equal(t, "Unknown", autodiff.Op(99).String())
	assert.True(t, autodiff.OpMatMul.Differentiable())
	assert.False(t, autodiff.OpAll.Differentiable())
	assert.False(t, autodiff.OpIsClose.Differentiable())

	_, err := autodiff.Lookup(autodiff.Op(99))
	require.Error(t, err)
}

func TestTensor_Arithmetic(t *testing.T) {
	a := from(t, []float64{2, 4, 8})
	b := from(t, []float64{1, 2, 4})

	tests := []struct {
		name string
		fn   func() (*autodiff.Tensor, error)
		want []float64
	}{
		{"sub", func() (*autodiff.Tensor, error) { return a.Sub(b) }, []float64{1, 2, 4}},
		{"div", func() (*autodiff.Tensor, error) { return a.Div(b) }, []float64{2, 2, 2}},
		{"add_scalar", func() (*autodiff.Tensor, error) { return a.AddScalar(1) }, []float64{3, 5, 9}},
		{"mul_scalar", func() (*autodiff.Tensor, error) { return a.MulScalar(0.5) }, []float64{1, 2, 4}},
		{"gt", func() (*autodiff.Tensor, error) { return b.Gt(from(t, []float64{2})) }, []float64{0, 0, 1}},
		{"lt", func() (*autodiff.Tensor, error) { return b.Lt(from(t, []float64{2})) }, []float64{1, 0, 0}},
		{"eq", func() (*autodiff.Tensor, error) { return a.Eq(from(t, []float64{4})) }, []float64{0, 1, 0}},
		{"is_close", func() (*autodiff.Tensor, error) { return a.IsClose(from(t, []float64{2.001, 4.5, 8})) }, []float64{1, 0, 1}},
		{"mean", func() (*autodiff.Tensor, error) { return b.Mean() }, []float64{7.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.fn()
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, out.Values(), 1e-12)
		})
	}
}

func TestTensor_SumAndAll(t *testing.T) {
	x := from(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	s, err := x.Sum()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1}, s.Shape())
	assert.Equal(t, []float64{21}, s.Values())

	s, err = x.Sum(0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3}, s.Shape())
	assert.Equal(t, []float64{5, 7, 9}, s.Values())

	m, err := x.Mean(1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 5}, m.Values(), 1e-12)

	_, err = x.Sum(0, 1)
	require.ErrorIs(t, err, tensor.ErrIndex)

	_, err = x.Sum(2)
	require.ErrorIs(t, err, tensor.ErrIndex)

	mask := from(t, [][]float64{{1, 1, 0}, {1, 1, 1}})
	all, err := mask.All(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, all.Values())

	all, err = mask.All()
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, all.Values())
}

func TestTensor_PermuteView(t *testing.T) {
	x := from(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	p, err := x.Permute(1, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, p.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, p.Values())

	_, err = p.View(6)
	require.ErrorIs(t, err, autodiff.ErrNotContiguous)

	c, err := p.Contiguous()
	require.NoError(t, err)
	v, err := c.View(6)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, v.Values())

	_, err = x.View(4)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = x.Permute(0, 0)
	require.ErrorIs(t, err, tensor.ErrIndex)
}
