// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/arith/internal/tensor"
)

// Value is a Scalar, Vector or Matrix.
type Value = tensor.Value

// Scalar is a single float32 value.
type Scalar = tensor.Scalar

// Vector is a sequence of float32 values.
type Vector = tensor.Vector

// Matrix is a sequence of rows of identical length.
type Matrix = tensor.Matrix

// Shape describes the rank and dimensions of a value.
type Shape = tensor.Shape

// Operation identifies an arithmetic operation.
type Operation = tensor.Operation

// Engine is the contract every compute engine implements.
type Engine = tensor.Engine

// EngineKind identifies a compute engine.
type EngineKind = tensor.EngineKind

// Error types returned by operations.
type (
	ShapeError                = tensor.ShapeError
	UnsupportedOperationError = tensor.UnsupportedOperationError
	MarshalingError           = tensor.MarshalingError
)

// Sentinel errors matched with errors.Is.
var (
	ErrShape       = tensor.ErrShape
	ErrUnsupported = tensor.ErrUnsupported
	ErrMarshaling  = tensor.ErrMarshaling
)

// Operations.
const (
	OpAdd       = tensor.OpAdd
	OpDivide    = tensor.OpDivide
	OpMultiply  = tensor.OpMultiply
	OpSubtract  = tensor.OpSubtract
	OpExp       = tensor.OpExp
	OpTranspose = tensor.OpTranspose
	OpProduct   = tensor.OpProduct
	OpConcat    = tensor.OpConcat
)

// Engine kinds.
const (
	Interpreted = tensor.Interpreted
	Native      = tensor.Native
	Parallel    = tensor.Parallel
)

// ScalarShape returns the rank 0 shape.
func ScalarShape() Shape {
	return tensor.ScalarShape()
}

// VectorShape returns the shape of a vector of length n.
func VectorShape(n int) Shape {
	return tensor.VectorShape(n)
}

// MatrixShape returns the shape of a rows×cols matrix.
func MatrixShape(rows, cols int) Shape {
	return tensor.MatrixShape(rows, cols)
}

// ShapeOf returns the shape of v. An empty vector has rank 1 and length 0.
func ShapeOf(v Value) Shape {
	return tensor.ShapeOf(v)
}

// Fill returns a value of the given shape with every element set to v.
//
// Example:
//
//	m := tensor.Fill(tensor.MatrixShape(2, 2), 3) // [[3 3] [3 3]]
func Fill(shape Shape, v Scalar) Value {
	return tensor.Fill(shape, v)
}

// Zeros returns a value of the given shape filled with zeros.
func Zeros(shape Shape) Value {
	return tensor.Zeros(shape)
}

// Ones returns a value of the given shape filled with ones.
func Ones(shape Shape) Value {
	return tensor.Ones(shape)
}

// FromSlice copies data into a new vector.
func FromSlice(data []float32) Vector {
	return tensor.FromSlice(data)
}

// FromRows copies rows into a new matrix. Rows must have equal lengths.
func FromRows(rows [][]float32) (Matrix, error) {
	return tensor.FromRows(rows)
}
