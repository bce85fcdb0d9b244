package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/internal/tensor"
)

func raw(t *testing.T, data []float64, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(data, tensor.Shape(shape))
	require.NoError(t, err)
	return r
}

func TestCPUBackend_Name(t *testing.T) {
	assert.Equal(t, "CPU", New().Name())
}

func TestCPUBackend_UnaryKernels(t *testing.T) {
	b := New()
	x := raw(t, []float64{-2, -0.5, 0.5, 2}, 4)

	tests := []struct {
		name string
		fn   func(*tensor.RawTensor) (*tensor.RawTensor, error)
		want func(float64) float64
	}{
		{"neg", b.Neg, func(v float64) float64 { return -v }},
		{"inv", b.Inv, func(v float64) float64 { return 1 / v }},
		{"sigmoid", b.Sigmoid, func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }},
		{"relu", b.ReLU, func(v float64) float64 { return math.Max(0, v) }},
		{"exp", b.Exp, math.Exp},
		{"copy", b.Copy, func(v float64) float64 { return v }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.fn(x)
			require.NoError(t, err)
			require.Equal(t, x.Shape(), out.Shape())
			for i, v := range x.Storage() {
				assert.InDelta(t, tt.want(v), out.Storage()[i], 1e-12)
			}
		})
	}
}

func TestCPUBackend_Log(t *testing.T) {
	out, err := New().Log(raw(t, []float64{1, math.E}, 2))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, out.Storage(), 1e-12)
}

func TestCPUBackend_BackwardKernels(t *testing.T) {
	b := New()
	x := raw(t, []float64{-1, 2}, 2)
	g := raw(t, []float64{3, 4}, 2)

	out, err := b.InvBack(x, g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-3, -1}, out.Storage(), 1e-12)

	out, err = b.ReLUBack(x, g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, out.Storage())

	out, err = b.LogBack(x, g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-3, 2}, out.Storage(), 1e-12)
}

func TestCPUBackend_AddBroadcast(t *testing.T) {
	b := New()
	a := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	c := raw(t, []float64{10, 20, 30}, 3)

	out, err := b.Add(a, c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, out.Storage())

	col := raw(t, []float64{100, 200}, 2, 1)
	out, err = b.Mul(a, col)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 800, 1000, 1200}, out.Storage())
}

func TestCPUBackend_ShapeMismatch(t *testing.T) {
	_, err := New().Add(raw(t, []float64{1, 2}, 2), raw(t, []float64{1, 2, 3}, 3))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestCPUBackend_PermutedInput(t *testing.T) {
	b := New()
	a := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	at, err := a.Permute(1, 0)
	require.NoError(t, err)

	out, err := b.Copy(at)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, out.Storage())
	assert.True(t, out.IsContiguous())
}

func TestCPUBackend_Comparisons(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3}, 3)
	y := raw(t, []float64{2, 2, 2.001}, 3)

	out, err := b.Lt(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, out.Storage())

	out, err = b.Eq(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, out.Storage())

	out, err = b.IsClose(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, out.Storage())

	out, err = b.IsClose(y, raw(t, []float64{2.001}, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, out.Storage())
}

func TestCPUBackend_Reduce(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out, err := b.SumReduce(x, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
	assert.Equal(t, []float64{5, 7, 9}, out.Storage())

	out, err = b.SumReduce(x, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1}, out.Shape())
	assert.Equal(t, []float64{6, 15}, out.Storage())

	flags := raw(t, []float64{1, 1, 0, 1}, 2, 2)
	out, err = b.AllReduce(flags, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, out.Storage())

	_, err = b.SumReduce(x, 2)
	assert.ErrorIs(t, err, tensor.ErrIndex)
}

func TestCPUBackend_MatMul(t *testing.T) {
	b := New()
	a := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	c := raw(t, []float64{7, 8, 9, 10, 11, 12}, 3, 2)

	out, err := b.MatMul(a, c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, out.Storage())
}

func TestCPUBackend_MatMulBatchedBroadcast(t *testing.T) {
	b := New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}))

	// Two batches of 2x2 against one shared 2x2.
	a := raw(t, []float64{1, 0, 0, 1, 2, 0, 0, 2}, 2, 2, 2)
	c := raw(t, []float64{1, 2, 3, 4}, 2, 2)

	out, err := b.MatMul(a, c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 2}, out.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 2, 4, 6, 8}, out.Storage())
}

func TestCPUBackend_MatMulTransposedView(t *testing.T) {
	b := New()
	a := raw(t, []float64{1, 2, 3, 4}, 2, 2)
	at, err := a.Permute(1, 0)
	require.NoError(t, err)

	eye := raw(t, []float64{1, 0, 0, 1}, 2, 2)
	out, err := b.MatMul(at, eye)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 2, 4}, out.Storage())
}

func TestCPUBackend_MatMulErrors(t *testing.T) {
	b := New()
	_, err := b.MatMul(raw(t, []float64{1, 2}, 2), raw(t, []float64{1, 2}, 2))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = b.MatMul(raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3), raw(t, []float64{1, 2, 3, 4}, 2, 2))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	data := make([]float64, 10000)
	for i := range data {
		data[i] = float64(i%97) - 48
	}
	x := raw(t, data, 100, 100)
	y := raw(t, data, 100, 100)

	par := New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}))
	seq := New(WithParallel(parallel.Sequential()))

	want, err := seq.Mul(x, y)
	require.NoError(t, err)
	got, err := par.Mul(x, y)
	require.NoError(t, err)
	assert.Equal(t, want.Storage(), got.Storage())

	wantSum, err := seq.SumReduce(x, 1)
	require.NoError(t, err)
	gotSum, err := par.SumReduce(x, 1)
	require.NoError(t, err)
	assert.Equal(t, wantSum.Storage(), gotSum.Storage())
}
