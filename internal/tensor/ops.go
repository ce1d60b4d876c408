package tensor

import "fmt"

// ApplyBinary computes a OP b for an element-wise operation.
// Callers must check op.IsElementwise first.
func ApplyBinary(op Operation, a, b float32) float32 {
	switch op {
	case OpAdd:
		return a + b
	case OpDivide:
		return a / b
	case OpMultiply:
		return a * b
	default:
		return a - b
	}
}

// CheckVectors verifies two vectors can be combined element-wise.
func CheckVectors(op Operation, a, b Vector) error {
	if len(a) != len(b) {
		return NewShapeError(op.String(), "vector lengths differ", ShapeOf(a), ShapeOf(b))
	}
	return nil
}

// CheckMatrices verifies the operand shapes of a matrix operation and
// returns the output shape. Element-wise operations need equal shapes,
// Product needs cols(a) == rows(b).
func CheckMatrices(op Operation, a, b Matrix) (Shape, error) {
	sa, sb := ShapeOf(a), ShapeOf(b)
	if op == OpProduct {
		if sa.Columns() != sb.Rows() {
			return Shape{}, NewShapeError(op.String(),
				fmt.Sprintf("inner dimensions differ (%d vs %d)", sa.Columns(), sb.Rows()), sa, sb)
		}
		return MatrixShape(sa.Rows(), sb.Columns()), nil
	}
	if sa != sb {
		return Shape{}, NewShapeError(op.String(), "matrix shapes differ", sa, sb)
	}
	return sa, nil
}
