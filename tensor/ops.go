// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"sync/atomic"

	"github.com/born-ml/arith/internal/dispatch"
	"github.com/born-ml/arith/internal/tensor"
)

var current atomic.Pointer[dispatch.Dispatcher]

// WithDispatcher replaces the dispatcher used by the package-level
// operations and returns the previous one. A nil d restores the default.
func WithDispatcher(d *dispatch.Dispatcher) *dispatch.Dispatcher {
	prev := current.Swap(d)
	if prev == nil {
		prev = dispatch.Default()
	}
	return prev
}

func dispatcher() *dispatch.Dispatcher {
	if d := current.Load(); d != nil {
		return d
	}
	return dispatch.Default()
}

// Add returns a + b with broadcasting.
func Add(a, b Value) (Value, error) {
	return dispatcher().Binary(a, b, tensor.OpAdd)
}

// Subtract returns a - b with broadcasting.
func Subtract(a, b Value) (Value, error) {
	return dispatcher().Binary(a, b, tensor.OpSubtract)
}

// Multiply returns the element-wise product a * b with broadcasting.
func Multiply(a, b Value) (Value, error) {
	return dispatcher().Binary(a, b, tensor.OpMultiply)
}

// Divide returns a / b with broadcasting. Division by zero follows IEEE-754.
//
// Example:
//
//	q, _ := tensor.Divide(tensor.Scalar(2), tensor.Vector{2, 4, 8}) // [1 0.5 0.25]
func Divide(a, b Value) (Value, error) {
	return dispatcher().Binary(a, b, tensor.OpDivide)
}

// Exp returns e raised to every element of a.
func Exp(a Value) (Value, error) {
	return dispatcher().Unary(a, tensor.OpExp)
}

// Transpose swaps the rows and columns of m.
func Transpose(m Matrix) (Matrix, error) {
	out, err := dispatcher().Unary(m, tensor.OpTranspose)
	if err != nil {
		return nil, err
	}
	return out.(Matrix), nil
}

// Product returns the matrix product a × b. The column count of a must
// equal the row count of b.
func Product(a, b Matrix) (Matrix, error) {
	out, err := dispatcher().Product(a, b)
	if err != nil {
		return nil, err
	}
	return out.(Matrix), nil
}

// Concat joins two vectors or matrices. Axis 0 stacks rows, axis 1 appends
// columns; two vectors are always joined end to end.
func Concat(a, b Value, axis int) (Value, error) {
	return tensor.Concat(a, b, axis)
}
