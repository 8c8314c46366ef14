// Package backend selects an array backend by name or from the environment.
package backend

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/born-ml/linop/internal/backend/cpu"
	"github.com/born-ml/linop/internal/backend/webgpu"
	"github.com/born-ml/linop/internal/envconfig"
	"github.com/born-ml/linop/internal/parallel"
	"github.com/born-ml/linop/internal/tensor"
)

// Open returns the named backend. An empty name reads LINOP_DEVICE.
// "webgpu" falls back to the CPU backend when no GPU can be opened.
// The returned release func frees device resources and is never nil.
func Open(name string) (tensor.Backend, func(), error) {
	if name == "" {
		name = envconfig.Device()
	}

	switch strings.ToLower(name) {
	case "", "cpu":
		return newCPU(), func() {}, nil
	case "webgpu", "gpu":
		gpu, err := webgpu.New()
		if err != nil {
			slog.Warn("webgpu unavailable, falling back to cpu", "error", err)
			return newCPU(), func() {}, nil
		}
		slog.Debug("using backend", "name", gpu.Name())
		return gpu, gpu.Release, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want cpu or webgpu)", name)
	}
}

func newCPU() *cpu.CPUBackend {
	//nolint:gosec // G115: thread counts are small
	return cpu.NewWithConfig(parallel.WithWorkers(int(envconfig.NumThreads())))
}
