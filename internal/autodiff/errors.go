package autodiff

import "github.com/pkg/errors"

// Errors returned by the autodiff core. Shape and index errors come from
// the tensor package (tensor.ErrShapeMismatch, tensor.ErrIndex,
// tensor.ErrInvalidShape) and pass through unchanged.
var (
	// ErrNoGradient is returned when backward is invoked on a rule that has
	// no gradient (All, IsClose). It is permanent.
	ErrNoGradient = errors.New("no gradient rule")

	// ErrNotContiguous is returned when View is applied to storage that is
	// not laid out row-major.
	ErrNotContiguous = errors.New("tensor must be contiguous to view")

	// ErrSavedValues reports a rule that saved twice in one forward call or
	// asked its Context for a saved tuple of the wrong type.
	ErrSavedValues = errors.New("saved values mismatch")

	// ErrArity reports a rule invoked with the wrong number of inputs, or a
	// backward that returned a cotangent count different from its inputs.
	ErrArity = errors.New("wrong number of values")

	// ErrGradCheck reports an analytic gradient that disagrees with the
	// central-difference estimate.
	ErrGradCheck = errors.New("gradient check failed")
)
