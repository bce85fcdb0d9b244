package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minigrad/internal/tensor"
)

// MatMul performs batched matrix multiplication over the trailing two dimensions.
//
//	2D: (M, K) @ (K, N) -> (M, N)
//	ND: (..., M, K) @ (..., K, N) -> (broadcast(...), M, N)
//
// Leading batch dimensions broadcast NumPy-style. Each batch is gathered into a
// gonum mat.Dense (operands may be permuted views) and multiplied with gonum.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) < 2 || len(bShape) < 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"matmul: operands need at least 2 dimensions, got %v and %v", aShape, bShape)
	}

	m, k := aShape[len(aShape)-2], aShape[len(aShape)-1]
	kAlt, n := bShape[len(bShape)-2], bShape[len(bShape)-1]
	if k != kAlt {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul: %v @ %v (inner dimensions %d vs %d)",
			aShape, bShape, k, kAlt)
	}

	aBatch, bBatch := aShape[:len(aShape)-2], bShape[:len(bShape)-2]
	batchShape := tensor.Shape{}
	if len(aBatch) > 0 || len(bBatch) > 0 {
		var err error
		batchShape, err = tensor.BroadcastShapes(aBatch, bBatch)
		if err != nil {
			return nil, errors.WithMessage(err, "matmul")
		}
	}

	outShape := append(batchShape.Clone(), m, n)
	out, err := tensor.Zeros(outShape)
	if err != nil {
		return nil, errors.WithMessage(err, "matmul")
	}

	dst := out.Storage()
	batches := batchShape.NumElements()
	cpu.forRange(batches, func(start, end int) {
		batchIdx := make(tensor.Index, len(batchShape))
		aIdx := make(tensor.Index, len(aShape))
		bIdx := make(tensor.Index, len(bShape))
		aMat := mat.NewDense(m, k, nil)
		bMat := mat.NewDense(k, n, nil)
		var cMat mat.Dense

		for batch := start; batch < end; batch++ {
			if len(batchShape) > 0 {
				tensor.ToIndex(batch, batchShape, batchIdx)
				tensor.BroadcastIndex(batchIdx, batchShape, aBatch, aIdx[:len(aBatch)])
				tensor.BroadcastIndex(batchIdx, batchShape, bBatch, bIdx[:len(bBatch)])
			}
			gatherMatrix(aMat, a, aIdx)
			gatherMatrix(bMat, b, bIdx)

			cMat.Reset()
			cMat.Mul(aMat, bMat)
			copy(dst[batch*m*n:(batch+1)*m*n], cMat.RawMatrix().Data)
		}
	})

	return out, nil
}

// gatherMatrix copies the trailing 2-D slice of r selected by the leading
// entries of idx into dst. The last two entries of idx are overwritten.
func gatherMatrix(dst *mat.Dense, r *tensor.RawTensor, idx tensor.Index) {
	rows, cols := dst.Dims()
	src := r.Storage()
	strides := r.Strides()
	d := len(idx)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx[d-2], idx[d-1] = i, j
			dst.Set(i, j, src[tensor.IndexToPosition(idx, strides)])
		}
	}
}
