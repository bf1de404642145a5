package mltest

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/nn"
)

// Model is the minimal surface ModelTest needs from a network: a
// forward pass and access to its parameters. nn.Sequential and every
// nn layer satisfy it.
type Model[B autodiff.BackwardCapable] interface {
	nn.Module[B]
}

// Params extracts the trainable parameters of a model in the order the
// model reports them. Frozen parameters (RequiresGrad false) are
// filtered out. A model with no trainable parameters yields an empty
// slice; extraction itself never fails.
func Params[B autodiff.BackwardCapable](model Model[B]) []*nn.Parameter[B] {
	all := model.Parameters()
	params := make([]*nn.Parameter[B], 0, len(all))
	for _, p := range all {
		if p.RequiresGrad() {
			params = append(params, p)
		}
	}
	return params
}
