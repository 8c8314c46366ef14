//go:build !windows

// Package webgpu implements the WebGPU backend for complex array primitives.
// The go-webgpu bindings load wgpu-native through goffi on windows only;
// on other platforms New reports ErrUnavailable.
package webgpu

import "github.com/born-ml/linop/internal/tensor"

// Backend is a placeholder that is never constructed on this platform.
type Backend struct{}

// New always fails with ErrUnavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU" }

// Device returns the compute device.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

func (b *Backend) Clear(*tensor.Array) { panic(ErrUnavailable) }
func (b *Backend) Copy(_, _ *tensor.Array) { panic(ErrUnavailable) }
func (b *Backend) Add(_, _, _ *tensor.Array) { panic(ErrUnavailable) }
func (b *Backend) FDiff(_, _ *tensor.Array, _ int) { panic(ErrUnavailable) }
func (b *Backend) FDiffAdjoint(_, _ *tensor.Array, _ int) { panic(ErrUnavailable) }
func (b *Backend) RSS(_, _ *tensor.Array, _ int) { panic(ErrUnavailable) }
