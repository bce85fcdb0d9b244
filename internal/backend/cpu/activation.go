package cpu

import "github.com/born-ml/minigrad/internal/tensor"

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("sigmoid", x, sigmoid)
}

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.mapKernel("relu", x, relu)
}

// ReLUBack passes g through where x > 0 and zeroes it elsewhere.
func (cpu *CPUBackend) ReLUBack(x, g *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.zipKernel("relu_back", x, g, reluBack)
}
