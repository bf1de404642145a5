// Copyright 2026 The TorchBlaze Authors. All rights reserved.
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: layers,
// activations, losses, and the Module interface they share.
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
//	    nn.NewReLU[B](),
//	    nn.NewLinear(8, 3, rng, backend),
//	)
package nn
