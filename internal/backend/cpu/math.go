package cpu

import (
	"math"

	"github.com/born-ml/minigrad/internal/tensor"
)

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("neg", x, neg)
}

// Inv computes element-wise reciprocal: 1/x.
func (cpu *CPUBackend) Inv(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("inv", x, inv)
}

// InvBack computes the reciprocal gradient -g/x² in one pass.
func (cpu *CPUBackend) InvBack(x, g *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("inv_back", x, g, invBack)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs follow math.Log (-Inf or NaN).
func (cpu *CPUBackend) Log(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("log", x, math.Log)
}

// LogBack computes the logarithm gradient g/x in one pass.
func (cpu *CPUBackend) LogBack(x, g *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("log_back", x, g, logBack)
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("exp", x, math.Exp)
}

// Copy returns a packed row-major copy of x.
func (cpu *CPUBackend) Copy(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("copy", x, identity)
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("add", a, b, add)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("mul", a, b, mul)
}
