package autodiff

import (
	"math"
	"math/rand"
	"reflect"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Func is a differentiable function of tensors, as checked by GradCheck.
type Func func(vals ...*Tensor) (*Tensor, error)

// GradCheckConfig controls the numerical gradient check.
type GradCheckConfig struct {
	Epsilon float64 // central-difference step
	RTol    float64 // relative tolerance
	ATol    float64 // absolute tolerance
	Seed    int64   // seed for the sampled coordinate
}

// DefaultGradCheckConfig returns ε = 1e-6, rtol = atol = 1e-2, seed 10.
func DefaultGradCheckConfig() GradCheckConfig {
	return GradCheckConfig{
		Epsilon: 1e-6,
		RTol:    1e-2,
		ATol:    1e-2,
		Seed:    10,
	}
}

// CentralDifference estimates d sum(f(vals)) / d vals[arg][ind] as
// (f(x+ε) - f(x-ε)) / 2ε. Only the single coordinate ind of argument arg is
// perturbed; every evaluation runs on detached copies, so no graph is built.
func CentralDifference(f Func, vals []*Tensor, arg int, ind tensor.Index, eps float64) (float64, error) {
	if arg < 0 || arg >= len(vals) {
		return 0, errors.Wrapf(tensor.ErrIndex, "argument %d out of range for %d values", arg, len(vals))
	}

	eval := func(delta float64) (float64, error) {
		args := make([]*Tensor, len(vals))
		for i, v := range vals {
			args[i] = v.Detach()
		}
		x := vals[arg]
		raw, err := x.backend.Copy(x.raw)
		if err != nil {
			return 0, err
		}
		v, err := raw.Get(ind)
		if err != nil {
			return 0, err
		}
		if err := raw.Set(ind, v+delta); err != nil {
			return 0, err
		}
		args[arg] = x.wrap(raw)

		out, err := f(args...)
		if err != nil {
			return 0, err
		}
		s, err := out.Sum()
		if err != nil {
			return 0, err
		}
		return s.Item()
	}

	plus, err := eval(eps)
	if err != nil {
		return 0, err
	}
	minus, err := eval(-eps)
	if err != nil {
		return 0, err
	}
	return (plus - minus) / (2 * eps), nil
}

// GradCheck runs GradCheckWith using DefaultGradCheckConfig.
func GradCheck(f Func, vals ...*Tensor) error {
	return GradCheckWith(DefaultGradCheckConfig(), f, vals...)
}

// GradCheckWith marks every value as a gradient leaf, backpropagates
// sum(f(vals)), and compares the analytic gradient at one sampled coordinate
// of each value against CentralDifference.
//
// A mismatch beyond |analytic - estimate| <= ATol + RTol*|estimate| returns
// ErrGradCheck naming the function, inputs, coordinate and both values.
func GradCheckWith(cfg GradCheckConfig, f Func, vals ...*Tensor) error {
	for _, v := range vals {
		v.SetRequiresGrad(true)
		v.ZeroGrad()
	}

	out, err := f(vals...)
	if err != nil {
		return errors.WithMessage(err, "grad check forward")
	}
	total, err := out.Sum()
	if err != nil {
		return err
	}
	if err := total.Backward(); err != nil {
		return errors.WithMessage(err, "grad check backward")
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // G404: reproducible sampling
	name := funcName(f)
	for i, x := range vals {
		ind := x.raw.Sample(rng)
		estimate, err := CentralDifference(f, vals, i, ind, cfg.Epsilon)
		if err != nil {
			return err
		}

		analytic := 0.0
		if g := x.Grad(); g != nil {
			if analytic, err = g.At(ind...); err != nil {
				return errors.WithMessagef(err, "grad check: gradient of argument %d has shape %v", i, g.Shape())
			}
		}

		klog.V(3).InfoS("Grad check", "func", name, "arg", i, "index", ind,
			"analytic", analytic, "estimate", estimate)

		if math.Abs(analytic-estimate) > cfg.ATol+cfg.RTol*math.Abs(estimate) {
			return errors.Wrapf(ErrGradCheck,
				"function %s\ninputs %s\nargument %d, index %v\nanalytic %g, estimate %g",
				name, dumpValues(vals), i, ind, analytic, estimate)
		}
	}
	return nil
}

func funcName(f Func) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer()); fn != nil {
		return fn.Name()
	}
	return "<unknown>"
}

func dumpValues(vals []*Tensor) string {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	out := make([][]float64, len(vals))
	for i, v := range vals {
		out[i] = v.Values()
	}
	return cfg.Sdump(out)
}
