package mltest

import (
	"errors"
	"fmt"
)

// Sentinel errors for each diagnostic check. Callers match them with
// errors.Is against the *Violation returned by ModelTest.
var (
	// ErrParamsTooLarge reports that no element of a parameter tensor
	// stayed below the configured upper magnitude limit.
	ErrParamsTooLarge = errors.New("model parameters are above the desired threshold")

	// ErrParamsTooSmall reports that no element of a parameter tensor
	// reached the configured lower magnitude limit.
	ErrParamsTooSmall = errors.New("model parameters are below the desired threshold")

	// ErrGradientAboveThreshold reports that every gradient element of
	// a parameter exceeded the configured gradient limit.
	ErrGradientAboveThreshold = errors.New("model gradients are above the allowed threshold")

	// ErrNaNParams reports a NaN value in a parameter tensor.
	ErrNaNParams = errors.New("model parameters contain NaN values")

	// ErrInfParams reports an infinite value in a parameter tensor.
	ErrInfParams = errors.New("model parameters contain infinite values")

	// ErrGradientsUninitialized reports that a trainable parameter had
	// no gradient when the gradient check ran.
	ErrGradientsUninitialized = errors.New("gradients are uninitialized for trainable parameter")
)

// Violation describes a single failed diagnostic check. It wraps the
// corresponding sentinel error, so errors.Is(err, ErrNaNParams) and
// friends work on the value returned by ModelTest.
type Violation struct {
	Kind      error   // One of the sentinel errors above
	Param     string  // Name of the offending parameter
	Epoch     int     // Epoch (1-based) during which the check failed
	Threshold float32 // Threshold in effect, zero for NaN/Inf checks
}

func (v *Violation) Error() string {
	switch v.Kind {
	case ErrNaNParams, ErrInfParams, ErrGradientsUninitialized:
		return fmt.Sprintf("epoch %d, parameter %q: %v", v.Epoch, v.Param, v.Kind)
	default:
		return fmt.Sprintf("epoch %d, parameter %q: %v (threshold %g)", v.Epoch, v.Param, v.Kind, v.Threshold)
	}
}

// Unwrap exposes the sentinel for errors.Is matching.
func (v *Violation) Unwrap() error {
	return v.Kind
}
