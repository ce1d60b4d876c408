// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides shape-aware float32 arithmetic on scalars, vectors
// and matrices.
//
// # Overview
//
// Every operation infers the shapes of its operands, broadcasts them to a
// common shape and runs on one of three engines:
//   - interpreted: pure Go loops, used for small shapes
//   - native: C routines behind a foreign memory layer (requires cgo)
//   - parallel: data-parallel kernels cached per output shape
//
// The engine is chosen from the operand shapes alone. Results are identical
// across engines up to float32 rounding.
//
// # Basic Usage
//
//	import "github.com/born-ml/arith/tensor"
//
//	func main() {
//	    x := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}
//
//	    y, _ := tensor.Add(x, tensor.Scalar(1))        // [[2 3 4] [5 6 7]]
//	    z, _ := tensor.Multiply(x, tensor.Vector{1, 10}) // [[1 2 3] [40 50 60]]
//	    xt, _ := tensor.Transpose(x)
//	    p, _ := tensor.Product(x, xt)                  // [[14 32] [32 77]]
//	}
//
// # Broadcasting
//
// A scalar combines with every element of the other operand. A vector
// against a matrix is replicated as every row when its length equals the
// column count, or spread down the rows when it equals the row count. Two
// matrices broadcast any axis of size 1:
//
//	a := tensor.Matrix{{1, 2, 3}}             // (1,3)
//	b := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}  // (2,3)
//	c, _ := tensor.Add(a, b)                  // [[2 4 6] [5 7 9]]
//
// Shapes that cannot be reconciled return an error matching ErrShape.
//
// # Engine Selection
//
// The cost of an operation is the sum of every dimension of both operands.
// Operations costing more than 100 run on the native engine, or on the
// parallel engine when cgo is unavailable. Use WithDispatcher to supply a
// custom configuration.
package tensor
