package tensor

// Backend defines the kernel table that every compute backend must implement.
// Backends execute map, zip, reduce and matrix-multiply work over raw
// storage; they never build autodiff graph structure.
//
// Binary kernels broadcast their operands NumPy-style. Reductions keep the
// reduced dimension with size 1. Every kernel returns a fresh, contiguous
// RawTensor and leaves its inputs untouched.
type Backend interface {
	// Element-wise unary operations
	Neg(a *RawTensor) (*RawTensor, error)     // -a
	Inv(a *RawTensor) (*RawTensor, error)     // 1/a
	Sigmoid(a *RawTensor) (*RawTensor, error) // 1/(1+e^-a)
	ReLU(a *RawTensor) (*RawTensor, error)    // max(0, a)
	Log(a *RawTensor) (*RawTensor, error)     // natural logarithm
	Exp(a *RawTensor) (*RawTensor, error)     // e^a
	Copy(a *RawTensor) (*RawTensor, error)    // contiguous identity

	// Element-wise binary operations
	Add(a, b *RawTensor) (*RawTensor, error)
	Mul(a, b *RawTensor) (*RawTensor, error)
	Lt(a, b *RawTensor) (*RawTensor, error)      // 1 where a < b, else 0
	Eq(a, b *RawTensor) (*RawTensor, error)      // 1 where a == b, else 0
	IsClose(a, b *RawTensor) (*RawTensor, error) // 1 where |a-b| < 1e-2, else 0

	// Fused backward kernels: x is the forward input, g the upstream gradient.
	InvBack(x, g *RawTensor) (*RawTensor, error)  // -g/x²
	ReLUBack(x, g *RawTensor) (*RawTensor, error) // g where x > 0, else 0
	LogBack(x, g *RawTensor) (*RawTensor, error)  // g/x

	// Reductions along dim (dimension kept with size 1)
	SumReduce(a *RawTensor, dim int) (*RawTensor, error) // sum
	AllReduce(a *RawTensor, dim int) (*RawTensor, error) // product, i.e. logical AND over 0/1 values

	// MatMul multiplies the trailing two dimensions, broadcasting leading batch dimensions.
	MatMul(a, b *RawTensor) (*RawTensor, error)

	// Metadata
	Name() string
}
