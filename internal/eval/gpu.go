// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"log/slog"
	"sort"
)

// GPURuntime tracks @gpu functions and parallel launches. There is no device
// backend: kernels run on the CPU, one iteration at a time, in order.
type GPURuntime struct {
	logger    *slog.Logger
	functions map[string]*Function
	launches  int
}

// NewGPURuntime creates a simulated GPU runtime.
func NewGPURuntime(logger *slog.Logger) *GPURuntime {
	return &GPURuntime{
		logger:    logger,
		functions: make(map[string]*Function),
	}
}

// Mode describes the execution backend.
func (g *GPURuntime) Mode() string {
	return "simulation"
}

// Register records fn as a GPU kernel, replacing any previous definition.
func (g *GPURuntime) Register(fn *Function) {
	g.functions[fn.Name] = fn
	g.logger.Debug("gpu.register", "fn", fn.Name, "params", len(fn.Params))
}

// Kernels returns the registered kernel names, sorted.
func (g *GPURuntime) Kernels() []string {
	names := make([]string, 0, len(g.functions))
	for name := range g.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Launch records one kernel call or parallel loop of n work items.
func (g *GPURuntime) Launch(name string, n int64) {
	g.launches++
	g.logger.Debug("gpu.launch", "kernel", name, "items", n)
}

// Launches returns the number of launches recorded so far.
func (g *GPURuntime) Launches() int {
	return g.launches
}
