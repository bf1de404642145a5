package ops

import (
	"fmt"
	"math"

	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// CrossEntropyOp represents fused softmax + cross-entropy loss.
//
// Forward:
//
//	Loss = mean(-log_softmax(logits)[targets])
//
// log_softmax uses the log-sum-exp trick for numerical stability:
//
//	log_softmax(z) = z - (max(z) + log(Σ exp(z - max(z))))
//
// Backward:
//
//	∂L/∂logits = (softmax(logits) - one_hot(targets)) / batch_size
//
// Assumptions:
//   - Logits shape: [batch_size, num_classes]
//   - Targets shape: [batch_size], int32 class indices
//   - Output: scalar mean loss
type CrossEntropyOp struct {
	logits  *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

// NewCrossEntropyOp creates a new cross-entropy operation.
func NewCrossEntropyOp(logits, targets, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, output: output}
}

// Inputs returns the logits tensor. Targets are class indices and receive
// no gradient.
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logits}
}

// Output returns the scalar loss tensor.
func (op *CrossEntropyOp) Output() *tensor.RawTensor { return op.output }

// Backward computes the gradient with respect to logits:
// (softmax - one_hot) / batch_size, scaled by the upstream gradient.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	shape := op.logits.Shape()
	if len(shape) != 2 {
		panic("cross entropy: backward only supports 2D logits [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]

	logitsGrad, err := tensor.NewRaw(shape, op.logits.DType(), op.logits.Device())
	if err != nil {
		panic(fmt.Sprintf("cross entropy backward: %v", err))
	}

	logitsData := op.logits.AsFloat32()
	targetsData := op.targets.AsInt32()
	gradData := logitsGrad.AsFloat32()
	gradScale := outputGrad.AsFloat32()[0]

	for b := 0; b < batchSize; b++ {
		row := logitsData[b*numClasses : (b+1)*numClasses]
		gradRow := gradData[b*numClasses : (b+1)*numClasses]

		softmaxRow(gradRow, row)

		gradRow[targetsData[b]] -= 1.0
		for i := range gradRow {
			gradRow[i] *= gradScale / float32(batchSize)
		}
	}

	return []*tensor.RawTensor{logitsGrad}
}

// CrossEntropyForward computes the mean negative log-likelihood of the
// target classes under softmax(logits). Used by backends to produce the
// forward value the op records.
func CrossEntropyForward(logits, targets *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic("cross entropy: expected 2D logits [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]

	targetsData := targets.AsInt32()
	if len(targetsData) != batchSize {
		panic(fmt.Sprintf("cross entropy: %d targets for batch of %d", len(targetsData), batchSize))
	}

	logitsData := logits.AsFloat32()
	var totalLoss float64

	for b := 0; b < batchSize; b++ {
		row := logitsData[b*numClasses : (b+1)*numClasses]
		target := targetsData[b]
		if target < 0 || int(target) >= numClasses {
			panic(fmt.Sprintf("cross entropy: target %d out of range [0, %d)", target, numClasses))
		}

		// log-sum-exp trick
		maxLogit := row[0]
		for _, v := range row[1:] {
			if v > maxLogit {
				maxLogit = v
			}
		}
		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxLogit))
		}
		logSumExp := float64(maxLogit) + math.Log(sumExp)

		totalLoss += logSumExp - float64(row[target])
	}

	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, device)
	if err != nil {
		panic(fmt.Sprintf("cross entropy: %v", err))
	}
	result.AsFloat32()[0] = float32(totalLoss / float64(batchSize))
	return result
}

// softmaxRow writes softmax(src) into dst using the max-subtraction trick.
func softmaxRow(dst, src []float32) {
	maxVal := src[0]
	for _, v := range src[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for i, v := range src {
		e := math.Exp(float64(v - maxVal))
		dst[i] = float32(e)
		sum += e
	}
	for i := range dst {
		dst[i] = float32(float64(dst[i]) / sum)
	}
}
