package mltest

import (
	"math"

	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/nn"
)

// The magnitude checks are existential: a parameter passes as soon as
// one element clears the threshold, and fails only when no element
// does. This boundary behavior is deliberate; see DESIGN.md before
// changing the predicates.

// CheckGreater asserts the parameter sits above the magnitude floor:
// it fails unless at least one element has magnitude strictly above
// lowerLimit.
func CheckGreater[B autodiff.BackwardCapable](param *nn.Parameter[B], lowerLimit float32) error {
	for _, v := range param.Tensor().Data() {
		if abs32(v) > lowerLimit {
			return nil
		}
	}
	return &Violation{Kind: ErrParamsTooSmall, Param: param.Name(), Threshold: lowerLimit}
}

// CheckSmaller asserts the parameter sits below the magnitude ceiling:
// it fails unless at least one element has magnitude strictly below
// upperLimit.
func CheckSmaller[B autodiff.BackwardCapable](param *nn.Parameter[B], upperLimit float32) error {
	for _, v := range param.Tensor().Data() {
		if abs32(v) < upperLimit {
			return nil
		}
	}
	return &Violation{Kind: ErrParamsTooLarge, Param: param.Name(), Threshold: upperLimit}
}

// CheckGradientSmaller is two-stage: a trainable parameter with no
// gradient at all fails with ErrGradientsUninitialized; otherwise the
// parameter fails only when every gradient element has magnitude above
// gradLimit. NaN gradient elements count as not exceeding the limit,
// NaN compares false.
func CheckGradientSmaller[B autodiff.BackwardCapable](param *nn.Parameter[B], gradLimit float32) error {
	grad := param.Grad()
	if grad == nil {
		return &Violation{Kind: ErrGradientsUninitialized, Param: param.Name()}
	}
	for _, v := range grad.Data() {
		if !(abs32(v) > gradLimit) {
			return nil
		}
	}
	return &Violation{Kind: ErrGradientAboveThreshold, Param: param.Name(), Threshold: gradLimit}
}

// CheckNaN fails a parameter as soon as any element is NaN.
func CheckNaN[B autodiff.BackwardCapable](param *nn.Parameter[B]) error {
	for _, v := range param.Tensor().Data() {
		if math.IsNaN(float64(v)) {
			return &Violation{Kind: ErrNaNParams, Param: param.Name()}
		}
	}
	return nil
}

// CheckInfinite fails a parameter as soon as any element is +Inf or
// -Inf.
func CheckInfinite[B autodiff.BackwardCapable](param *nn.Parameter[B]) error {
	for _, v := range param.Tensor().Data() {
		if math.IsInf(float64(v), 0) {
			return &Violation{Kind: ErrInfParams, Param: param.Name()}
		}
	}
	return nil
}

// runChecks walks the parameters in extraction order and applies the
// enabled checks to each, in the fixed order greater, smaller,
// gradient, NaN, infinite. Returns the first violation found.
func runChecks[B autodiff.BackwardCapable](params []*nn.Parameter[B], cfg Config[B], epoch int) error {
	type check struct {
		enabled bool
		run     func(*nn.Parameter[B]) error
	}
	checks := []check{
		{cfg.CheckGreater, func(p *nn.Parameter[B]) error { return CheckGreater(p, cfg.LowerLimit) }},
		{cfg.CheckSmaller, func(p *nn.Parameter[B]) error { return CheckSmaller(p, cfg.UpperLimit) }},
		{cfg.CheckGradientSmaller, func(p *nn.Parameter[B]) error { return CheckGradientSmaller(p, cfg.GradLimit) }},
		{cfg.CheckNaN, func(p *nn.Parameter[B]) error { return CheckNaN(p) }},
		{cfg.CheckInfinite, func(p *nn.Parameter[B]) error { return CheckInfinite(p) }},
	}
	for _, p := range params {
		for _, c := range checks {
			if !c.enabled {
				continue
			}
			if err := c.run(p); err != nil {
				if v, ok := err.(*Violation); ok {
					v.Epoch = epoch
				}
				return err
			}
		}
	}
	return nil
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
