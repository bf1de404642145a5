// Copyright 2026 The TorchBlaze Authors. All rights reserved.
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// The backend reports detected SIMD capabilities in its name (for
// example "CPU(AVX2,FMA3)") but all kernels are portable Go.
package cpu

import (
	internalcpu "github.com/SiddeshSambasivam/torchblaze/internal/backend/cpu"
	"github.com/SiddeshSambasivam/torchblaze/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
