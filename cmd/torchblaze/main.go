// Package main provides the TorchBlaze CLI.
//
// The check command builds a small classifier, trains it on a random
// batch for a few steps, and runs the full diagnostic suite after
// every optimizer step.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/SiddeshSambasivam/torchblaze/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/backend/cpu"
	"github.com/SiddeshSambasivam/torchblaze/mltest"
	"github.com/SiddeshSambasivam/torchblaze/nn"
	"github.com/SiddeshSambasivam/torchblaze/optim"
	"github.com/SiddeshSambasivam/torchblaze/tensor"
)

const version = "v0.1.0-dev"

type backendT = *autodiff.Backend[*cpu.Backend]

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("TorchBlaze %s\n", version)
		return
	}

	seed := flag.Int64("seed", 42, "RNG seed for data and weight initialization")
	epochs := flag.Int("epochs", mltest.DefaultEpochs, "Number of training steps to run")
	lr := flag.Float64("lr", 0.001, "SGD learning rate")
	momentum := flag.Float64("momentum", 0.9, "SGD momentum")
	upper := flag.Float64("upper", mltest.DefaultUpperLimit, "Parameter magnitude ceiling")
	lower := flag.Float64("lower", mltest.DefaultLowerLimit, "Parameter magnitude floor")
	gradLimit := flag.Float64("grad-limit", mltest.DefaultGradLimit, "Gradient magnitude ceiling")
	batch := flag.Int("batch", 4, "Batch size")
	features := flag.Int("features", 4, "Input features")
	hidden := flag.Int("hidden", 8, "Hidden layer width")
	classes := flag.Int("classes", 3, "Output classes")
	flag.Parse()

	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("TorchBlaze %s - model diagnostic run\n", version)
	fmt.Printf("backend: %s\n", backend.Name())
	fmt.Printf("model: %d -> %d -> %d, batch %d, seed %d\n\n", *features, *hidden, *classes, *batch, *seed)

	model := nn.NewSequential[backendT](
		nn.NewLinear(*features, *hidden, rng, backend),
		nn.NewLinear(*hidden, *classes, rng, backend),
	)

	optimizer := optim.NewSGD(
		mltest.Params[backendT](model),
		optim.SGDConfig{LR: float32(*lr), Momentum: float32(*momentum)},
		backend,
	)

	x := tensor.Randn(tensor.Shape{*batch, *features}, rng, backend)
	y := tensor.RandInt(tensor.Shape{*batch}, 0, int32(*classes), rng, backend)

	cfg := mltest.DefaultConfig[backendT]()
	cfg.Epochs = *epochs
	cfg.UpperLimit = float32(*upper)
	cfg.LowerLimit = float32(*lower)
	cfg.GradLimit = float32(*gradLimit)

	err := mltest.ModelTest[backendT](model, x, y.Raw(), optimizer, cfg)
	if err != nil {
		fmt.Printf("\nFAIL: %v\n", err)
		var v *mltest.Violation
		if errors.As(err, &v) {
			fmt.Printf("  parameter: %s\n  epoch:     %d\n", v.Param, v.Epoch)
		}
		os.Exit(1)
	}
	fmt.Printf("\nOK: all %d epochs passed every enabled check\n", *epochs)
}
