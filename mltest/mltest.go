// Copyright 2026 The TorchBlaze Authors. All rights reserved.
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

// Package mltest is the model diagnostic harness: it trains a model
// for a handful of steps on a single batch and checks parameter and
// gradient health after every optimizer step.
//
// Example:
//
//	type B = *autodiff.Backend[*cpu.Backend]
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(42))
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(4, 8, rng, backend),
//	    nn.NewLinear(8, 3, rng, backend),
//	)
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.001, Momentum: 0.9}, backend)
//
//	x := tensor.Randn(tensor.Shape{4, 4}, rng, backend)
//	y := tensor.RandInt(tensor.Shape{4}, 0, 3, rng, backend)
//
//	if err := mltest.ModelTest(model, x, y.Raw(), optimizer, mltest.DefaultConfig[B]()); err != nil {
//	    log.Fatal(err)
//	}
package mltest

import (
	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/mltest"
	"github.com/SiddeshSambasivam/torchblaze/internal/nn"
	"github.com/SiddeshSambasivam/torchblaze/internal/optim"
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// Sentinel errors returned (wrapped in a *Violation) when a check
// fails. Match with errors.Is.
var (
	ErrParamsTooLarge         = mltest.ErrParamsTooLarge
	ErrParamsTooSmall         = mltest.ErrParamsTooSmall
	ErrGradientAboveThreshold = mltest.ErrGradientAboveThreshold
	ErrNaNParams              = mltest.ErrNaNParams
	ErrInfParams              = mltest.ErrInfParams
	ErrGradientsUninitialized = mltest.ErrGradientsUninitialized
)

// Violation describes a single failed diagnostic check.
type Violation = mltest.Violation

// Model is the surface ModelTest needs from a network.
type Model[B autodiff.BackwardCapable] = mltest.Model[B]

// Config controls which checks run and with which thresholds.
type Config[B autodiff.BackwardCapable] = mltest.Config[B]

// LossFunc computes a scalar loss from model output and targets.
type LossFunc[B autodiff.BackwardCapable] = mltest.LossFunc[B]

// Default thresholds and epoch count.
const (
	DefaultEpochs     = mltest.DefaultEpochs
	DefaultUpperLimit = mltest.DefaultUpperLimit
	DefaultLowerLimit = mltest.DefaultLowerLimit
	DefaultGradLimit  = mltest.DefaultGradLimit
)

// DefaultConfig returns a Config with every check enabled and the
// standard thresholds.
func DefaultConfig[B autodiff.BackwardCapable]() Config[B] {
	return mltest.DefaultConfig[B]()
}

// ModelTest trains model on the batch for the configured number of
// epochs, running the enabled checks after every optimizer step. It
// returns nil on a clean run or the first *Violation found.
func ModelTest[B autodiff.BackwardCapable](
	model Model[B],
	batchX *tensor.Tensor[float32, B],
	batchY *tensor.RawTensor,
	optimizer optim.Optimizer,
	cfg Config[B],
) error {
	return mltest.ModelTest(model, batchX, batchY, optimizer, cfg)
}

// Params extracts the trainable parameters of a model, preserving the
// model's reporting order.
func Params[B autodiff.BackwardCapable](model Model[B]) []*nn.Parameter[B] {
	return mltest.Params(model)
}

// Individual checks, usable outside a full ModelTest run.

// CheckGreater fails when every element of param has magnitude at or
// below lowerLimit.
func CheckGreater[B autodiff.BackwardCapable](param *nn.Parameter[B], lowerLimit float32) error {
	return mltest.CheckGreater(param, lowerLimit)
}

// CheckSmaller fails when every element of param has magnitude at or
// above upperLimit.
func CheckSmaller[B autodiff.BackwardCapable](param *nn.Parameter[B], upperLimit float32) error {
	return mltest.CheckSmaller(param, upperLimit)
}

// CheckGradientSmaller fails when every gradient element of param has
// magnitude above gradLimit, or when the gradient is missing.
func CheckGradientSmaller[B autodiff.BackwardCapable](param *nn.Parameter[B], gradLimit float32) error {
	return mltest.CheckGradientSmaller(param, gradLimit)
}

// CheckNaN fails when any element of param is NaN.
func CheckNaN[B autodiff.BackwardCapable](param *nn.Parameter[B]) error {
	return mltest.CheckNaN(param)
}

// CheckInfinite fails when any element of param is infinite.
func CheckInfinite[B autodiff.BackwardCapable](param *nn.Parameter[B]) error {
	return mltest.CheckInfinite(param)
}
