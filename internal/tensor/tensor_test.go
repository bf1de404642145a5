package tensor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/SiddeshSambasivam/torchblaze/internal/backend/cpu"
	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape tensor.Shape
		want  int
	}{
		{tensor.Shape{}, 1},
		{tensor.Shape{5}, 5},
		{tensor.Shape{2, 3}, 6},
		{tensor.Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := tensor.Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("ComputeStrides = %v, want %v", strides, want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (tensor.Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (tensor.Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (tensor.Shape{-1, 3}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want tensor.Shape
		needs      bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, false},
		{tensor.Shape{3, 1}, tensor.Shape{3, 4}, tensor.Shape{3, 4}, true},
		{tensor.Shape{4}, tensor.Shape{2, 4}, tensor.Shape{2, 4}, true},
		{tensor.Shape{1, 5}, tensor.Shape{3, 1}, tensor.Shape{3, 5}, true},
	}
	for _, tt := range tests {
		got, needs, err := tensor.BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
		}
		if !got.Equal(tt.want) || needs != tt.needs {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v; want %v, %v", tt.a, tt.b, got, needs, tt.want, tt.needs)
		}
	}

	if _, _, err := tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{4, 5}); err == nil {
		t.Error("incompatible shapes accepted")
	}
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if !x.Shape().Equal(tensor.Shape{2, 2}) {
		t.Errorf("shape = %v, want [2 2]", x.Shape())
	}
	if got := x.At(1, 0); got != 3 {
		t.Errorf("At(1,0) = %f, want 3", got)
	}

	if _, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend); err == nil {
		t.Error("length/shape mismatch accepted")
	}
}

func TestZerosOnesFull(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{3}, backend)
	for i, v := range z.Data() {
		if v != 0 {
			t.Fatalf("Zeros[%d] = %f", i, v)
		}
	}

	o := tensor.Ones[float32](tensor.Shape{3}, backend)
	for i, v := range o.Data() {
		if v != 1 {
			t.Fatalf("Ones[%d] = %f", i, v)
		}
	}

	f := tensor.Full(tensor.Shape{2}, float32(2.5), backend)
	if f.Data()[0] != 2.5 || f.Data()[1] != 2.5 {
		t.Errorf("Full = %v", f.Data())
	}

	b := tensor.Ones[bool](tensor.Shape{2}, backend)
	if !b.Data()[0] || !b.Data()[1] {
		t.Errorf("Ones[bool] = %v", b.Data())
	}
}

func TestRandn_Reproducible(t *testing.T) {
	backend := cpu.New()

	a := tensor.Randn(tensor.Shape{16}, rand.New(rand.NewSource(7)), backend)
	b := tensor.Randn(tensor.Shape{16}, rand.New(rand.NewSource(7)), backend)
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("same seed diverged at %d: %f vs %f", i, a.Data()[i], b.Data()[i])
		}
	}

	for i, v := range a.Data() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("Randn produced non-finite value at %d: %f", i, v)
		}
	}
}

func TestRandInt_Range(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	x := tensor.RandInt(tensor.Shape{100}, 0, 3, rng, backend)
	for i, v := range x.Data() {
		if v < 0 || v >= 3 {
			t.Fatalf("RandInt[%d] = %d, out of [0, 3)", i, v)
		}
	}
}

func TestTensor_Clone(t *testing.T) {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)

	y := x.Clone()
	y.Data()[0] = 99
	if x.Data()[0] != 1 {
		t.Error("Clone shares data with original")
	}
}

func TestTensor_Item(t *testing.T) {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float32{3.5}, tensor.Shape{1}, backend)
	if got := x.Item(); got != 3.5 {
		t.Errorf("Item = %f, want 3.5", got)
	}
}

func TestRawTensor_WithShape(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	raw.AsFloat32()[0] = 7

	view := raw.WithShape(tensor.Shape{3, 2})
	if !view.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("view shape = %v", view.Shape())
	}
	// View shares the buffer.
	if view.AsFloat32()[0] != 7 {
		t.Error("WithShape copied data instead of sharing it")
	}
}
