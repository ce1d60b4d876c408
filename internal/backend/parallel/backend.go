// Package parallel implements the parallel engine: data-parallel kernels
// that compute one output element per unit of work.
//
// Kernels are compiled once per (family, output shape) and reused across
// engine instances. Inputs are flattened row-major before a kernel runs and
// the output is reshaped afterwards.
package parallel

import (
	"github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/internal/tensor"
)

// Backend implements tensor.Engine with cached data-parallel kernels.
type Backend struct {
	cfg parallel.Config
}

// New creates a parallel engine. Work is split according to cfg.
func New(cfg parallel.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Name returns the engine name.
func (b *Backend) Name() string {
	return "parallel"
}

// Kind returns the engine kind.
func (b *Backend) Kind() tensor.EngineKind {
	return tensor.Parallel
}

// Config returns the work splitting configuration.
func (b *Backend) Config() parallel.Config {
	return b.cfg
}

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)
