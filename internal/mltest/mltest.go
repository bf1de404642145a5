// Package mltest runs short training loops against a model and checks
// the numeric health of its parameters and gradients after every
// optimizer step: magnitude bounds, gradient bounds, and the absence
// of NaN or infinite values.
package mltest

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/nn"
	"github.com/SiddeshSambasivam/torchblaze/internal/optim"
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// ModelTest trains model on the single batch (batchX, batchY) for
// cfg.Epochs steps, running the enabled diagnostic checks after every
// step. It returns nil when all epochs complete cleanly, or the first
// *Violation encountered; the run aborts at that point, leaving the
// model in its current state for inspection.
//
// Zero-valued thresholds and epoch count in cfg are replaced by
// defaults; check toggles are taken literally. When cfg.Loss is nil,
// batchY is interpreted as int32 class indices and cross-entropy is
// used.
func ModelTest[B autodiff.BackwardCapable](
	model Model[B],
	batchX *tensor.Tensor[float32, B],
	batchY *tensor.RawTensor,
	optimizer optim.Optimizer,
	cfg Config[B],
) error {
	cfg = cfg.fillDefaults()

	backend := batchX.Backend()
	tape := backend.GetTape()

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		// Re-extracted each epoch so models that grow or freeze
		// parameters mid-run are still checked accurately.
		params := Params(model)

		optimizer.ZeroGrad()

		tape.Clear()
		tape.StartRecording()

		output := model.Forward(batchX)
		loss := computeLoss(output, batchY, cfg, backend)

		grads := autodiff.Backward(loss, backend)
		tape.StopRecording()

		// Expose gradients to the checks through the parameters
		// themselves, the way the optimizer sees them.
		for _, p := range params {
			if g, ok := grads[p.Tensor().Raw()]; ok {
				p.SetGrad(tensor.New[float32](g, backend))
			}
		}

		optimizer.Step(grads)

		if err := runChecks(params, cfg, epoch); err != nil {
			return err
		}

		cfg.Logf("epoch %d/%d passed, loss %.6f\n", epoch, cfg.Epochs, loss.Item())
	}
	return nil
}

func computeLoss[B autodiff.BackwardCapable](
	output *tensor.Tensor[float32, B],
	batchY *tensor.RawTensor,
	cfg Config[B],
	backend B,
) *tensor.Tensor[float32, B] {
	if cfg.Loss != nil {
		return cfg.Loss(output, batchY)
	}
	targets := tensor.New[int32](batchY, backend)
	criterion := nn.NewCrossEntropyLoss(backend)
	return criterion.Forward(output, targets)
}
