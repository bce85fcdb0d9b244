package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
)

type pair struct{ a, b int }

func TestContext_SaveAndRestore(t *testing.T) {
	ctx := autodiff.NewContext(false)
	require.NoError(t, autodiff.Save(ctx, pair{1, 2}))

	got, err := autodiff.Saved[pair](ctx)
	require.NoError(t, err)
	assert.Equal(t, pair{1, 2}, got)
	assert.Contains(t, ctx.String(), "pair")
}

func TestContext_SaveTwice(t *testing.T) {
	ctx := autodiff.NewContext(false)
	require.NoError(t, autodiff.Save(ctx, pair{1, 2}))

	err := autodiff.Save(ctx, pair{3, 4})
	require.ErrorIs(t, err, autodiff.ErrSavedValues)
}

func TestContext_TypeMismatch(t *testing.T) {
	ctx := autodiff.NewContext(false)
	require.NoError(t, autodiff.Save(ctx, pair{1, 2}))

	_, err := autodiff.Saved[string](ctx)
	require.ErrorIs(t, err, autodiff.ErrSavedValues)
}

func TestContext_NoGradSkipsSave(t *testing.T) {
	ctx := autodiff.NewContext(true)
	assert.True(t, ctx.NoGrad())
	require.NoError(t, autodiff.Save(ctx, pair{1, 2}))
	assert.Nil(t, ctx.SavedValues())

	_, err := autodiff.Saved[pair](ctx)
	require.ErrorIs(t, err, autodiff.ErrSavedValues)
}

func TestContext_BackwardWithoutForward(t *testing.T) {
	g := from(t, []float64{1})
	_, err := autodiff.Mul{}.Backward(autodiff.NewContext(false), g)
	require.ErrorIs(t, err, autodiff.ErrSavedValues)
}
