// Package tensor provides the value model shared by every engine: scalars,
// vectors and matrices of float32, their shapes, shape inference and
// broadcasting.
package tensor

import "fmt"

// Value is a scalar, vector or matrix operand.
//
// The set of implementations is closed: Scalar, Vector and Matrix.
type Value interface {
	isValue()
}

// Scalar is a single float32 value.
type Scalar float32

// Vector is a fixed-length sequence of scalars.
type Vector []float32

// Matrix is a sequence of rows of identical length.
type Matrix []Vector

func (Scalar) isValue() {}
func (Vector) isValue() {}
func (Matrix) isValue() {}

// Clone returns a deep copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = row.Clone()
	}
	return out
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Columns returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Columns() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks that every row has the length of the first row.
func (m Matrix) Validate() error {
	cols := m.Columns()
	for i, row := range m {
		if len(row) != cols {
			return NewShapeError("validate",
				fmt.Sprintf("ragged matrix: row %d has length %d, expected %d", i, len(row), cols),
				ShapeOf(m))
		}
	}
	return nil
}

// Flatten returns the matrix elements in row-major order.
func (m Matrix) Flatten() []float32 {
	out := make([]float32, 0, m.Rows()*m.Columns())
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// Reshape builds a rows×cols matrix from row-major data.
// The returned rows alias data.
func Reshape(data []float32, rows, cols int) Matrix {
	out := make(Matrix, rows)
	for i := range out {
		out[i] = Vector(data[i*cols : (i+1)*cols : (i+1)*cols])
	}
	return out
}
