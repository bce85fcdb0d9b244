package cpu

import "github.com/born-ml/minigrad/internal/tensor"

// Comparison operations return 1.0 where the predicate holds and 0.0 elsewhere.

// Lt returns a < b element-wise.
func (cpu *CPUBackend) Lt(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("lt", a, b, lt)
}

// Eq returns a == b element-wise.
func (cpu *CPUBackend) Eq(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("eq", a, b, eq)
}

// IsClose returns |a - b| < 1e-2 element-wise.
func (cpu *CPUBackend) IsClose(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("is_close", a, b, isClose)
}
