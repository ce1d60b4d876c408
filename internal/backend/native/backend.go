// Package native implements the native engine: every operation is a C
// routine reached through the foreign memory marshaling layer.
//
// The engine needs cgo. New returns ffi.ErrUnavailable otherwise.
package native

import (
	"fmt"

	"github.com/born-ml/arith/internal/ffi"
	"github.com/born-ml/arith/internal/tensor"
)

// Backend implements tensor.Engine on top of an ffi.Layer.
type Backend struct {
	layer *ffi.Layer
}

// New creates a native engine backed by the C heap.
func New() (*Backend, error) {
	alloc, err := ffi.DefaultAllocator()
	if err != nil {
		return nil, fmt.Errorf("native engine: %w", err)
	}
	return NewWithAllocator(alloc), nil
}

// NewWithAllocator creates a native engine with a custom allocator.
func NewWithAllocator(alloc ffi.Allocator) *Backend {
	return &Backend{layer: ffi.NewLayer(alloc)}
}

// Name returns the engine name.
func (b *Backend) Name() string {
	return "native"
}

// Kind returns the engine kind.
func (b *Backend) Kind() tensor.EngineKind {
	return tensor.Native
}

// Stats returns the buffer bookkeeping of the marshaling layer.
func (b *Backend) Stats() ffi.Stats {
	return b.layer.Stats()
}

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)
