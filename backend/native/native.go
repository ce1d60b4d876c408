// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package native provides the engine backed by C routines.
//
// Operands are copied into foreign memory for each call and copied back
// afterwards; every buffer is released before the call returns. The engine
// requires cgo. Without it New returns ErrUnavailable.
package native

import (
	internalnative "github.com/born-ml/arith/internal/backend/native"
	"github.com/born-ml/arith/internal/ffi"
	"github.com/born-ml/arith/tensor"
)

// Backend is the native engine.
type Backend = internalnative.Backend

// Stats reports the foreign buffer bookkeeping of a Backend.
type Stats = ffi.Stats

// ErrUnavailable is returned by New when the binary was built without cgo.
var ErrUnavailable = ffi.ErrUnavailable

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)

// New creates a native engine using the C heap.
func New() (*Backend, error) {
	return internalnative.New()
}
