package autodiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Context is the per-call scratch record handed to a rule's Forward and,
// later, to the matching Backward. Apply creates a fresh Context for every
// call; it is never shared between two invocations.
//
// A rule saves at most one value per forward call. Rules that need several
// values define a struct for them, so Backward gets exactly the tuple that
// Forward stored:
//
//	type mulSaved struct{ a, b *Tensor }
//
//	// Forward
//	if err := Save(ctx, mulSaved{a, b}); err != nil { ... }
//
//	// Backward
//	s, err := Saved[mulSaved](ctx)
type Context struct {
	noGrad   bool
	saved    any
	hasSaved bool
}

// NewContext creates a Context. With noGrad set, Save becomes a no-op
// because no backward will ever run for the call.
func NewContext(noGrad bool) *Context {
	return &Context{noGrad: noGrad}
}

// NoGrad reports whether gradient bookkeeping is disabled for this call.
func (c *Context) NoGrad() bool {
	return c.noGrad
}

// SavedValues returns whatever was saved, or nil. Intended for diagnostics;
// rules use Saved.
func (c *Context) SavedValues() any {
	return c.saved
}

// Save stores s for the matching backward call.
func Save[S any](ctx *Context, s S) error {
	if ctx.noGrad {
		return nil
	}
	if ctx.hasSaved {
		return errors.Wrapf(ErrSavedValues, "context already holds %T, cannot save %T", ctx.saved, s)
	}
	ctx.saved = s
	ctx.hasSaved = true
	return nil
}

// Saved returns the tuple stored by Save. It fails when nothing was saved
// or when the stored tuple is not an S.
func Saved[S any](ctx *Context) (S, error) {
	var zero S
	if !ctx.hasSaved {
		return zero, errors.Wrapf(ErrSavedValues, "nothing saved, want %T", zero)
	}
	s, ok := ctx.saved.(S)
	if !ok {
		return zero, errors.Wrapf(ErrSavedValues, "saved %T, want %T", ctx.saved, zero)
	}
	return s, nil
}

// String summarises the context for debug logs.
func (c *Context) String() string {
	if !c.hasSaved {
		return fmt.Sprintf("Context{noGrad: %t}", c.noGrad)
	}
	return fmt.Sprintf("Context{noGrad: %t, saved: %T}", c.noGrad, c.saved)
}
