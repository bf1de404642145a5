package mltest_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiddeshSambasivam/torchblaze/internal/autodiff"
	"github.com/SiddeshSambasivam/torchblaze/internal/backend/cpu"
	"github.com/SiddeshSambasivam/torchblaze/internal/mltest"
	"github.com/SiddeshSambasivam/torchblaze/internal/nn"
	"github.com/SiddeshSambasivam/torchblaze/internal/optim"
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

type testBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

var nan32 = float32(math.NaN())
var inf32 = float32(math.Inf(1))

// healthyModel builds a 2->3->2 classifier with every parameter element
// hand-set inside the (lower, upper) default band, so a run with a tiny
// learning rate passes every check on every epoch.
func healthyModel(backend testBackend) *nn.Sequential[testBackend] {
	rng := rand.New(rand.NewSource(1))
	l1 := nn.NewLinear(2, 3, rng, backend)
	l2 := nn.NewLinear(3, 2, rng, backend)

	fill := func(p *nn.Parameter[testBackend], v float32) {
		data := p.Tensor().Data()
		for i := range data {
			data[i] = v
		}
	}
	fill(l1.Weight(), 0.05)
	fill(l1.Bias(), 0.02)
	fill(l2.Weight(), -0.06)
	fill(l2.Bias(), 0.03)

	return nn.NewSequential[testBackend](l1, l2)
}

func healthyBatch(t *testing.T, backend testBackend) (*tensor.Tensor[float32, testBackend], *tensor.RawTensor) {
	t.Helper()
	x, err := tensor.FromSlice([]float32{0.5, -0.25, 0.1, 0.75}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]int32{0, 1}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	return x, y.Raw()
}

func newOptimizer(backend testBackend, model mltest.Model[testBackend], lr float32) optim.Optimizer {
	return optim.NewSGD(mltest.Params(model), optim.SGDConfig{LR: lr}, backend)
}

// singleParam wraps hand-set values in a trainable parameter for the
// check-level tests.
func singleParam(t *testing.T, backend testBackend, name string, values []float32) *nn.Parameter[testBackend] {
	t.Helper()
	x, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	return nn.NewParameter(name, x)
}

func withGrad(t *testing.T, backend testBackend, param *nn.Parameter[testBackend], values []float32) *nn.Parameter[testBackend] {
	t.Helper()
	g, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	param.SetGrad(g)
	return param
}

func TestCheckGreater(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Uniformly at or below the floor fails.
	p := singleParam(t, backend, "w", []float32{0.005, -0.002, 0.01})
	err := mltest.CheckGreater(p, 0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrParamsTooSmall)

	// One element above the floor passes.
	p = singleParam(t, backend, "w", []float32{0.005, 0.02})
	assert.NoError(t, mltest.CheckGreater(p, 0.01))
}

func TestCheckSmaller(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Every element at or above the ceiling fails.
	p := singleParam(t, backend, "w", []float32{0.1, 0.5, -2})
	err := mltest.CheckSmaller(p, 0.1)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrParamsTooLarge)

	// One element below the ceiling rescues the whole tensor, however
	// oversized the rest is.
	p = singleParam(t, backend, "w", []float32{1e6, 1e6, 0.09})
	assert.NoError(t, mltest.CheckSmaller(p, 0.1))
}

func TestCheckGradientSmaller(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Missing gradient is its own failure kind.
	p := singleParam(t, backend, "w", []float32{0.05})
	err := mltest.CheckGradientSmaller(p, 1e4)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrGradientsUninitialized)
	assert.NotErrorIs(t, err, mltest.ErrGradientAboveThreshold)

	// Every gradient element above the limit fails.
	p = withGrad(t, backend, singleParam(t, backend, "w", []float32{0.05, 0.05}), []float32{2e4, 5e4})
	err = mltest.CheckGradientSmaller(p, 1e4)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrGradientAboveThreshold)

	// A single in-range gradient element passes.
	p = withGrad(t, backend, singleParam(t, backend, "w", []float32{0.05, 0.05}), []float32{2e4, 1})
	assert.NoError(t, mltest.CheckGradientSmaller(p, 1e4))

	// NaN compares false, so NaN gradients never count as exceeding.
	p = withGrad(t, backend, singleParam(t, backend, "w", []float32{0.05, 0.05}), []float32{nan32, nan32})
	assert.NoError(t, mltest.CheckGradientSmaller(p, 1e4))
}

func TestCheckNaNAndInfinite(t *testing.T) {
	backend := autodiff.New(cpu.New())

	p := singleParam(t, backend, "w", []float32{0.05, nan32, 0.02})
	assert.ErrorIs(t, mltest.CheckNaN(p), mltest.ErrNaNParams)
	assert.NoError(t, mltest.CheckInfinite(p))

	p = singleParam(t, backend, "w", []float32{0.05, inf32})
	assert.NoError(t, mltest.CheckNaN(p))
	assert.ErrorIs(t, mltest.CheckInfinite(p), mltest.ErrInfParams)

	p = singleParam(t, backend, "w", []float32{0.05, 0.02})
	assert.NoError(t, mltest.CheckNaN(p))
	assert.NoError(t, mltest.CheckInfinite(p))
}

func TestParams(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)

	params := mltest.Params[testBackend](model)
	require.Len(t, params, 4)
	assert.Equal(t, "linear_2x3.weight", params[0].Name())
	assert.Equal(t, "linear_2x3.bias", params[1].Name())
	assert.Equal(t, "linear_3x2.weight", params[2].Name())
	assert.Equal(t, "linear_3x2.bias", params[3].Name())

	// Frozen parameters are filtered out.
	params[1].SetRequiresGrad(false)
	filtered := mltest.Params[testBackend](model)
	require.Len(t, filtered, 3)
	assert.Equal(t, "linear_3x2.weight", filtered[1].Name())

	// A model with nothing trainable yields an empty slice.
	empty := nn.NewSequential[testBackend](nn.NewReLU[testBackend]())
	assert.Empty(t, mltest.Params[testBackend](empty))
}

func TestModelTest_CleanRun(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	var logLines []string
	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Logf = func(format string, args ...any) {
		logLines = append(logLines, fmt.Sprintf(format, args...))
	}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.NoError(t, err)
	assert.Len(t, logLines, mltest.DefaultEpochs)
}

func TestModelTest_NaNDetected(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	// Poison one weight element. The NaN propagates through forward,
	// backward, and the optimizer step into every parameter, so only
	// the NaN check is left enabled to observe it directly.
	model.Parameters()[0].Tensor().Data()[0] = nan32

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.CheckGreater = false
	cfg.CheckSmaller = false
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrNaNParams)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "linear_2x3.weight", v.Param)
	assert.Equal(t, 1, v.Epoch)
}

func TestModelTest_NaNPropagationHitsMagnitudeCheckFirst(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	model.Parameters()[0].Tensor().Data()[0] = nan32

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Logf = func(string, ...any) {}

	// With every check enabled, an all-NaN tensor has no element above
	// the floor (NaN compares false), so the magnitude-floor check
	// fires before the NaN check ever runs. Fixed ordering keeps this
	// reproducible.
	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrParamsTooSmall)
}

func TestModelTest_NaNBeforeInf(t *testing.T) {
	backend := autodiff.New(cpu.New())
	inner := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	// The extra parameter takes no part in forward, so its poisoned
	// values survive the optimizer step untouched.
	extra := singleParam(t, backend, "detached", []float32{nan32, inf32})
	model := &extraParamModel{inner: inner, extra: extra}

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.CheckGreater = false
	cfg.CheckSmaller = false
	cfg.CheckGradientSmaller = false
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrNaNParams)
	assert.NotErrorIs(t, err, mltest.ErrInfParams)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "detached", v.Param)
}

func TestModelTest_InfDetected(t *testing.T) {
	backend := autodiff.New(cpu.New())
	inner := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	extra := singleParam(t, backend, "detached", []float32{0.05, inf32})
	model := &extraParamModel{inner: inner, extra: extra}

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.CheckGradientSmaller = false // detached parameter never gets a gradient
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrInfParams)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "detached", v.Param)
	assert.Equal(t, 1, v.Epoch)
}

func TestModelTest_GradientsUninitialized(t *testing.T) {
	backend := autodiff.New(cpu.New())
	inner := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	// Healthy values, but no gradient ever reaches the detached
	// parameter: the gradient check must report the missing gradient,
	// never a threshold violation.
	extra := singleParam(t, backend, "detached", []float32{0.05, 0.03})
	model := &extraParamModel{inner: inner, extra: extra}

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrGradientsUninitialized)
	assert.NotErrorIs(t, err, mltest.ErrGradientAboveThreshold)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "detached", v.Param)
}

func TestModelTest_DisabledChecksNeverRaise(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	model.Parameters()[0].Tensor().Data()[0] = nan32

	var epochs int
	cfg := mltest.Config[testBackend]{
		Epochs: 3,
		Logf:   func(string, ...any) { epochs++ },
	}

	// All toggles off: the most pathological state sails through.
	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, epochs)
}

func TestModelTest_ZeroBiasFailsFloorCheck(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(42))

	l1 := nn.NewLinear(2, 3, rng, backend)
	l2 := nn.NewLinear(3, 2, rng, backend)
	// Weights in the healthy band, biases left at their zero
	// initialization. One small optimizer step cannot lift a zero bias
	// above the default floor, so the floor check fails on it.
	for _, p := range []*nn.Parameter[testBackend]{l1.Weight(), l2.Weight()} {
		data := p.Tensor().Data()
		for i := range data {
			data[i] = 0.05
		}
	}
	model := nn.NewSequential[testBackend](l1, l2)
	x, y := healthyBatch(t, backend)

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrParamsTooSmall)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "linear_2x3.bias", v.Param)
	assert.Equal(t, 1, v.Epoch)
	assert.Equal(t, float32(mltest.DefaultLowerLimit), v.Threshold)
}

func TestModelTest_FixedSeedReproducible(t *testing.T) {
	run := func() error {
		backend := autodiff.New(cpu.New())
		rng := rand.New(rand.NewSource(42))
		model := nn.NewSequential[testBackend](
			nn.NewLinear(4, 8, rng, backend),
			nn.NewLinear(8, 3, rng, backend),
		)
		x := tensor.Randn(tensor.Shape{4, 4}, rng, backend)
		y := tensor.RandInt(tensor.Shape{4}, 0, 3, rng, backend)

		optimizer := optim.NewSGD(mltest.Params[testBackend](model),
			optim.SGDConfig{LR: 0.001, Momentum: 0.9}, backend)

		cfg := mltest.DefaultConfig[testBackend]()
		cfg.Logf = func(string, ...any) {}
		return mltest.ModelTest[testBackend](model, x, y.Raw(), optimizer, cfg)
	}

	first := run()
	second := run()
	if first == nil {
		assert.NoError(t, second)
	} else {
		require.Error(t, second)
		assert.Equal(t, first.Error(), second.Error())
	}
}

func TestModelTest_CustomLoss(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)

	x, err := tensor.FromSlice([]float32{0.5, -0.25, 0.1, 0.75}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float32{0.1, 0, 0, 0.1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	criterion := nn.NewMSELoss(backend)
	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Logf = func(string, ...any) {}
	cfg.Loss = func(output *tensor.Tensor[float32, testBackend], targets *tensor.RawTensor) *tensor.Tensor[float32, testBackend] {
		return criterion.Forward(output, tensor.New[float32](targets, backend))
	}

	err = mltest.ModelTest(model, x, target.Raw(), newOptimizer(backend, model, 1e-4), cfg)
	assert.NoError(t, err)
}

func TestModelTest_EpochDefaults(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	var epochs int
	cfg := mltest.DefaultConfig[testBackend]()
	cfg.Epochs = 0 // zero falls back to the default
	cfg.Logf = func(string, ...any) { epochs++ }

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.NoError(t, err)
	assert.Equal(t, mltest.DefaultEpochs, epochs)
}

func TestModelTest_ChecksParametersAddedMidRun(t *testing.T) {
	backend := autodiff.New(cpu.New())
	inner := healthyModel(backend)
	x, y := healthyBatch(t, backend)

	// The late parameter only appears after the first forward pass, so
	// it is invisible during epoch 1 and must be picked up by the
	// epoch-2 extraction.
	late := singleParam(t, backend, "late", []float32{nan32})
	model := &growingParamModel{inner: inner, late: late}

	cfg := mltest.DefaultConfig[testBackend]()
	cfg.CheckGreater = false
	cfg.CheckSmaller = false
	cfg.CheckGradientSmaller = false
	cfg.Logf = func(string, ...any) {}

	err := mltest.ModelTest(model, x, y, newOptimizer(backend, model, 1e-4), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, mltest.ErrNaNParams)

	var v *mltest.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "late", v.Param)
	assert.Equal(t, 2, v.Epoch)
}

func TestViolation_Message(t *testing.T) {
	v := &mltest.Violation{
		Kind:      mltest.ErrParamsTooLarge,
		Param:     "linear_2x3.weight",
		Epoch:     2,
		Threshold: 0.1,
	}
	msg := v.Error()
	assert.Contains(t, msg, "linear_2x3.weight")
	assert.Contains(t, msg, "epoch 2")
	assert.Contains(t, msg, "0.1")
	assert.ErrorIs(t, v, mltest.ErrParamsTooLarge)
}

func TestDefaultConfig(t *testing.T) {
	cfg := mltest.DefaultConfig[testBackend]()
	assert.True(t, cfg.CheckGreater)
	assert.True(t, cfg.CheckSmaller)
	assert.True(t, cfg.CheckGradientSmaller)
	assert.True(t, cfg.CheckNaN)
	assert.True(t, cfg.CheckInfinite)
	assert.Equal(t, mltest.DefaultEpochs, cfg.Epochs)
	assert.Equal(t, float32(1e-1), cfg.UpperLimit)
	assert.Equal(t, float32(1e-2), cfg.LowerLimit)
	assert.Equal(t, float32(1e4), cfg.GradLimit)
}

// extraParamModel reports one extra trainable parameter that its
// forward pass never touches.
type extraParamModel struct {
	inner *nn.Sequential[testBackend]
	extra *nn.Parameter[testBackend]
}

func (m *extraParamModel) Forward(input *tensor.Tensor[float32, testBackend]) *tensor.Tensor[float32, testBackend] {
	return m.inner.Forward(input)
}

func (m *extraParamModel) Parameters() []*nn.Parameter[testBackend] {
	return append(m.inner.Parameters(), m.extra)
}

// growingParamModel starts reporting one more parameter after its
// first forward pass, like a lazily initialized layer.
type growingParamModel struct {
	inner *nn.Sequential[testBackend]
	late  *nn.Parameter[testBackend]
	calls int
}

func (m *growingParamModel) Forward(input *tensor.Tensor[float32, testBackend]) *tensor.Tensor[float32, testBackend] {
	m.calls++
	return m.inner.Forward(input)
}

func (m *growingParamModel) Parameters() []*nn.Parameter[testBackend] {
	if m.calls == 0 {
		return m.inner.Parameters()
	}
	return append(m.inner.Parameters(), m.late)
}
