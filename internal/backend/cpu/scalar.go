package cpu

import "math"

// Scalar operators applied by the map, zip and reduce kernels.

// closeTolerance is the absolute tolerance used by isClose.
const closeTolerance = 1e-2

func neg(x float64) float64 { return -x }

func inv(x float64) float64 { return 1.0 / x }

// invBack is d/dx(1/x) * g.
func invBack(x, g float64) float64 { return -g / (x * x) }

// sigmoid uses the branch that never exponentiates a large positive number.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func reluBack(x, g float64) float64 {
	if x > 0 {
		return g
	}
	return 0
}

func logBack(x, g float64) float64 { return g / x }

func identity(x float64) float64 { return x }

func add(x, y float64) float64 { return x + y }

func mul(x, y float64) float64 { return x * y }

func lt(x, y float64) float64 {
	if x < y {
		return 1
	}
	return 0
}

func eq(x, y float64) float64 {
	if x == y {
		return 1
	}
	return 0
}

func isClose(x, y float64) float64 {
	if math.Abs(x-y) < closeTolerance {
		return 1
	}
	return 0
}
