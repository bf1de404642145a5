// Package nn implements the neural network building blocks used by the
// TorchBlaze diagnostic harness.
//
// This package provides:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable parameters with gradient tracking
//   - Linear: fully connected layer
//   - ReLU activation
//   - Loss functions: MSE, CrossEntropy
//   - Sequential: container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(10, 5, rng, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(5, 2, rng, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module, in
	// declaration order. Modules without trainable parameters (e.g.
	// activations) return an empty slice.
	Parameters() []*Parameter[B]
}
