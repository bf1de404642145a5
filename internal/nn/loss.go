package nn

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// The computation runs through backend operations so it participates in
// the gradient tape when used with an autodiff backend.
type MSELoss[B tensor.Backend] struct {
	backend B
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return &MSELoss[B]{backend: backend}
}

// Forward computes the MSE loss as a scalar tensor of shape [1].
//
// Predictions and targets must have the same shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// Parameters returns an empty slice (loss functions have no trainable
// parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
