package cpu

import (
	"fmt"
	"math"

	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// broadcastBinary applies op over a and b into result, walking the output
// shape and mapping each output index back to the (possibly size-1) input
// dimensions.
func broadcastBinary(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(x, y float32) float32) {
	aData, bData, out := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := aShape.ComputeStrides(), bShape.ComputeStrides()

	ndim := len(outShape)
	idx := make([]int, ndim)

	for i := range out {
		// Map the output multi-index to flat offsets in a and b.
		aOff, bOff := 0, 0
		for d := 0; d < ndim; d++ {
			aDim := d - (ndim - len(aShape))
			if aDim >= 0 && aShape[aDim] > 1 {
				aOff += idx[d] * aStrides[aDim]
			}
			bDim := d - (ndim - len(bShape))
			if bDim >= 0 && bShape[bDim] > 1 {
				bOff += idx[d] * bStrides[bDim]
			}
		}
		out[i] = op(aData[aOff], bData[bOff])

		// Advance the multi-index (row-major order).
		for d := ndim - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
}

// transposeFloat32 permutes src's dimensions by axes into dst.
func transposeFloat32(dst, src []float32, srcShape tensor.Shape, axes []int) {
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = srcShape[ax]
	}

	idx := make([]int, ndim)
	for i := range dst {
		srcOff := 0
		for d := 0; d < ndim; d++ {
			srcOff += idx[d] * srcStrides[axes[d]]
		}
		dst[i] = src[srcOff]

		for d := ndim - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < newShape[d] {
				break
			}
			idx[d] = 0
		}
	}
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v @ %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: incompatible shapes %v @ %v", aShape, bShape))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result, err := tensor.NewRaw(tensor.Shape{m, n}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	aData, bData, out := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()

	// i-k-j loop order keeps the inner loop sequential over both b and out.
	for i := 0; i < m; i++ {
		for kk := 0; kk < k; kk++ {
			av := aData[i*k+kk]
			if av == 0 {
				continue
			}
			bRow := bData[kk*n : (kk+1)*n]
			outRow := out[i*n : (i+1)*n]
			for j := range bRow {
				outRow[j] += av * bRow[j]
			}
		}
	}

	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unaryOp("mulscalar", x, func(v float32) float32 { return v * scalar })
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unaryOp("addscalar", x, func(v float32) float32 { return v + scalar })
}

// Sqrt computes the element-wise square root.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("sqrt", x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
}

func (cpu *CPUBackend) unaryOp(opName string, x *tensor.RawTensor, op func(v float32) float32) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s", opName, x.DType()))
	}
	result, err := tensor.NewRaw(x.Shape(), tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", opName, err))
	}
	xData, out := x.AsFloat32(), result.AsFloat32()
	for i := range out {
		out[i] = op(xData[i])
	}
	return result
}

// Sum reduces the tensor to the scalar sum of its elements.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("sum", x, false)
}

// Mean reduces the tensor to the scalar mean of its elements.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("mean", x, true)
}

func (cpu *CPUBackend) reduce(opName string, x *tensor.RawTensor, mean bool) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s", opName, x.DType()))
	}
	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", opName, err))
	}

	var sum float32
	for _, v := range x.AsFloat32() {
		sum += v
	}
	if mean {
		sum /= float32(x.NumElements())
	}
	result.AsFloat32()[0] = sum
	return result
}
