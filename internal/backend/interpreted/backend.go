// Package interpreted implements the interpreted engine: plain Go loops over
// in-process data. It has the lowest fixed cost of all engines and is the
// default choice for small shapes.
package interpreted

import (
	"github.com/born-ml/arith/internal/tensor"
)

// Backend implements tensor.Engine with direct loops over Go slices.
type Backend struct {
	kind tensor.EngineKind
}

// New creates a new interpreted engine.
func New() *Backend {
	return &Backend{
		kind: tensor.Interpreted,
	}
}

// Name returns the engine name.
func (b *Backend) Name() string {
	return "interpreted"
}

// Kind returns the engine kind.
func (b *Backend) Kind() tensor.EngineKind {
	return b.kind
}

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)
