package nn

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// CrossEntropyBackend is an interface for backends that implement fused
// softmax + cross-entropy. The autodiff backend satisfies it.
type CrossEntropyBackend interface {
	CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor
}

// CrossEntropyLoss computes softmax cross-entropy loss for classification.
//
// Expects raw logits of shape [batch_size, num_classes] and int32 class
// indices of shape [batch_size]; softmax is applied internally with the
// log-sum-exp trick for numerical stability.
type CrossEntropyLoss[B tensor.Backend] struct {
	backend B
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{backend: backend}
}

// Forward computes the mean cross-entropy loss as a scalar tensor of
// shape [1].
func (c *CrossEntropyLoss[B]) Forward(logits *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	ceBackend, ok := any(c.backend).(CrossEntropyBackend)
	if !ok {
		panic("CrossEntropyLoss: backend must implement CrossEntropy (use autodiff.AutodiffBackend)")
	}
	return tensor.New[float32, B](ceBackend.CrossEntropy(logits.Raw(), targets.Raw()), c.backend)
}

// Parameters returns an empty slice (loss functions have no trainable
// parameters).
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}
