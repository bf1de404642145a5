package ops

import (
	"fmt"

	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// reduceBroadcast sums grad along the dimensions that were broadcast during
// the forward pass, so the result matches targetShape.
//
// Broadcasting in the forward direction replicates size-1 (or missing)
// dimensions; the chain rule therefore sums the incoming gradient over those
// replicated positions.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, _ tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		return grad
	}

	result, err := tensor.NewRaw(targetShape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("reduceBroadcast: %v", err))
	}

	gradData, out := grad.AsFloat32(), result.AsFloat32()
	targetStrides := targetShape.ComputeStrides()

	ndim := len(gradShape)
	idx := make([]int, ndim)

	for i := range gradData {
		// Map a grad index to the target offset; broadcast dimensions
		// collapse to index 0 and accumulate.
		off := 0
		for d := 0; d < ndim; d++ {
			tDim := d - (ndim - len(targetShape))
			if tDim >= 0 && targetShape[tDim] > 1 {
				off += idx[d] * targetStrides[tDim]
			}
		}
		out[off] += gradData[i]

		for d := ndim - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < gradShape[d] {
				break
			}
			idx[d] = 0
		}
	}

	return result
}

// negate returns -x as a new tensor.
func negate(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("negate: %v", err))
	}
	xData, out := x.AsFloat32(), result.AsFloat32()
	for i := range out {
		out[i] = -xData[i]
	}
	return result
}
