package mltest

import (
	"fmt"

	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// Default thresholds and epoch count used when the corresponding
// Config fields are left at their zero value.
const (
	DefaultEpochs     = 5
	DefaultUpperLimit = 1e-1
	DefaultLowerLimit = 1e-2
	DefaultGradLimit  = 1e4
)

// LossFunc computes a scalar loss from model output and targets. The
// targets tensor carries whatever dtype the loss expects; the built-in
// default treats it as int32 class indices for cross-entropy.
type LossFunc[B autodiff.BackwardCapable] func(output *tensor.Tensor[float32, B], targets *tensor.RawTensor) *tensor.Tensor[float32, B]

// Config controls which diagnostic checks ModelTest runs and with
// which thresholds. The zero value enables nothing; use DefaultConfig
// for the standard all-checks setup.
type Config[B autodiff.BackwardCapable] struct {
	Epochs int // Number of training steps to run (default: 5)

	// Check toggles. Disabled checks are skipped entirely.
	CheckGreater         bool // Parameter magnitudes vs LowerLimit
	CheckSmaller         bool // Parameter magnitudes vs UpperLimit
	CheckGradientSmaller bool // Gradient magnitudes vs GradLimit
	CheckNaN             bool // NaN values in parameters
	CheckInfinite        bool // Infinite values in parameters

	UpperLimit float32 // Magnitude ceiling (default: 1e-1)
	LowerLimit float32 // Magnitude floor (default: 1e-2)
	GradLimit  float32 // Gradient magnitude ceiling (default: 1e4)

	// Loss overrides the built-in cross-entropy loss. Optional.
	Loss LossFunc[B]

	// Logf receives one progress line per completed epoch. Optional;
	// defaults to fmt.Printf.
	Logf func(format string, args ...any)
}

// DefaultConfig returns a Config with every check enabled and the
// standard thresholds.
func DefaultConfig[B autodiff.BackwardCapable]() Config[B] {
	return Config[B]{
		Epochs:               DefaultEpochs,
		CheckGreater:         true,
		CheckSmaller:         true,
		CheckGradientSmaller: true,
		CheckNaN:             true,
		CheckInfinite:        true,
		UpperLimit:           DefaultUpperLimit,
		LowerLimit:           DefaultLowerLimit,
		GradLimit:            DefaultGradLimit,
	}
}

// fillDefaults replaces zero-valued numeric fields with their
// defaults. Check toggles are taken literally: a false toggle means
// the check is off, not unset.
func (c Config[B]) fillDefaults() Config[B] {
	if c.Epochs == 0 {
		c.Epochs = DefaultEpochs
	}
	if c.UpperLimit == 0 {
		c.UpperLimit = DefaultUpperLimit
	}
	if c.LowerLimit == 0 {
		c.LowerLimit = DefaultLowerLimit
	}
	if c.GradLimit == 0 {
		c.GradLimit = DefaultGradLimit
	}
	if c.Logf == nil {
		c.Logf = func(format string, args ...any) { fmt.Printf(format, args...) }
	}
	return c
}
