// Package cpu implements the CPU backend for complex strided arrays.
package cpu

import (
	"fmt"

	"github.com/born-ml/linop/internal/parallel"
	"github.com/born-ml/linop/internal/tensor"
)

// CPUBackend implements the array primitives in pure Go, splitting large
// kernels across goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend using one worker per CPU.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Parallel returns the parallelism settings.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}

func checkSameShape(op string, arrays ...*tensor.Array) {
	for _, a := range arrays[1:] {
		if !a.Shape().Equal(arrays[0].Shape()) {
			panic(fmt.Sprintf("%s: shape mismatch: %v vs %v", op, arrays[0].Shape(), a.Shape()))
		}
	}
}

func checkDim(op string, a *tensor.Array, dim int) {
	if dim < 0 || dim >= len(a.Shape()) {
		panic(fmt.Sprintf("%s: dimension %d out of range for shape %v", op, dim, a.Shape()))
	}
}

func allContiguous(arrays ...*tensor.Array) bool {
	for _, a := range arrays {
		if !a.IsContiguous() {
			return false
		}
	}
	return true
}
