package ops

import (
	"fmt"

	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// SumOp represents a full reduction: output = sum(x), a scalar.
//
// The scalar output gradient broadcasts back to every input element.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scale  bool // true for mean: gradient divided by element count
}

// NewSumOp creates a new SumOp for a total sum.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// NewMeanOp creates a new SumOp that scales the gradient by 1/N,
// matching a mean reduction in the forward pass.
func NewMeanOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output, scale: true}
}

// Backward broadcasts the scalar output gradient over the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(fmt.Sprintf("sum backward: %v", err))
	}

	g := outputGrad.AsFloat32()[0]
	if op.scale {
		g /= float32(op.input.NumElements())
	}
	out := gradInput.AsFloat32()
	for i := range out {
		out[i] = g
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the scalar reduction result.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }
