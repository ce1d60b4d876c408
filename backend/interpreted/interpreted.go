// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package interpreted provides the pure Go engine.
//
// It runs plain loops over Go slices and has the lowest fixed cost, which
// makes it the default for small operands.
//
// Example:
//
//	import (
//	    "github.com/born-ml/arith/backend/interpreted"
//	    "github.com/born-ml/arith/tensor"
//	)
//
//	func main() {
//	    e := interpreted.New()
//	    v, _ := e.BinaryVectors(tensor.Vector{1, 2}, tensor.Vector{3, 4}, tensor.OpAdd)
//	}
package interpreted

import (
	internalinterpreted "github.com/born-ml/arith/internal/backend/interpreted"
	"github.com/born-ml/arith/tensor"
)

// Backend is the interpreted engine.
type Backend = internalinterpreted.Backend

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)

// New creates a new interpreted engine.
func New() *Backend {
	return internalinterpreted.New()
}
