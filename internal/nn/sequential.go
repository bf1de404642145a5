package nn

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// Sequential is a container that chains modules in order.
//
// Example:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(4, 8, rng, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(8, 2, rng, backend),
//	)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new sequential model.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Forward passes the input through every module in order.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	x := input
	for _, m := range s.modules {
		x = m.Forward(x)
	}
	return x
}

// Parameters returns the parameters of all contained modules, in
// declaration order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}
