package nn

import (
	"math"
	"math/rand"

	"github.com/SiddeshSambasivam/torchblaze/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights from a uniform distribution
// U(-sqrt(6/(fan_in+fan_out)), sqrt(6/(fan_in+fan_out))), which maintains
// activation variance across layers.
//
// The random source is caller-supplied so that diagnostic runs stay
// reproducible under a fixed seed.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}

	return tensor.New[float32, B](t, backend)
}

// Zeros creates a tensor filled with zeros, commonly used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
