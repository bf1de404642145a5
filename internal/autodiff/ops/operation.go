// Package ops defines differentiable operations for reverse-mode
// automatic differentiation.
//
// Each operation records its inputs and output during the forward pass and
// computes input gradients during the backward pass:
//   - AddOp / SubOp: gradient flows through unchanged (negated for Sub's b)
//   - MulOp / DivOp: product and quotient rules
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - TransposeOp / ReshapeOp: gradient is permuted/reshaped back
//   - SumOp / MeanOp: gradient broadcasts back over the reduced elements
//   - ReLUOp: gradient masked where the input was non-positive
//   - CrossEntropyOp: softmax(logits) - one_hot(targets), averaged over batch
package ops

import "github.com/SiddeshSambasivam/torchblaze/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input tensor; nil entries mean no gradient
	// flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
