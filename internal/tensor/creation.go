package tensor

import "math/rand"

// Zeros creates a zero-filled array. Panics if the shape is invalid.
func Zeros(shape Shape, device Device) *Array {
	a, err := NewArray(shape, device)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return a
}

// Full creates an array filled with a specific value.
func Full(shape Shape, value complex64, device Device) *Array {
	a := Zeros(shape, device)
	data := a.Buffer()
	for i := range data {
		data[i] = value
	}
	return a
}

// Randn creates an array whose real and imaginary parts are drawn
// independently from the standard normal distribution.
func Randn(shape Shape, device Device, rng *rand.Rand) *Array {
	a := Zeros(shape, device)
	data := a.Buffer()
	for i := range data {
		data[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
	}
	return a
}
