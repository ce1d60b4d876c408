package tensor

import "fmt"

// Shape describes the rank and dimensions of a value.
//
// Rank 0 is a scalar, rank 1 a vector of length Dims[0], rank 2 a matrix of
// Dims[0] rows and Dims[1] columns. Unused dimensions are zero, so Shape is
// comparable and can be used directly as a map key.
type Shape struct {
	Rank int
	Dims [2]int
}

// ScalarShape returns the rank 0 shape.
func ScalarShape() Shape {
	return Shape{}
}

// VectorShape returns the shape of a vector of length n.
func VectorShape(n int) Shape {
	return Shape{Rank: 1, Dims: [2]int{n, 0}}
}

// MatrixShape returns the shape of a rows×cols matrix.
func MatrixShape(rows, cols int) Shape {
	return Shape{Rank: 2, Dims: [2]int{rows, cols}}
}

// ShapeOf infers the shape of a value.
//
// An empty vector is rank 1 with length 0; it is never reported as a scalar.
// Matrices report (row count, first row length); row lengths are not checked.
func ShapeOf(v Value) Shape {
	switch x := v.(type) {
	case Scalar:
		return ScalarShape()
	case Vector:
		return VectorShape(len(x))
	case Matrix:
		return MatrixShape(x.Rows(), x.Columns())
	default:
		panic(fmt.Sprintf("shape: unsupported value type %T", v))
	}
}

// IsScalar reports whether the shape is rank 0.
func (s Shape) IsScalar() bool { return s.Rank == 0 }

// IsVector reports whether the shape is rank 1.
func (s Shape) IsVector() bool { return s.Rank == 1 }

// IsMatrix reports whether the shape is rank 2.
func (s Shape) IsMatrix() bool { return s.Rank == 2 }

// Rows returns the first dimension (vector length for rank 1).
func (s Shape) Rows() int { return s.Dims[0] }

// Columns returns the second dimension (0 unless rank 2).
func (s Shape) Columns() int { return s.Dims[1] }

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	switch s.Rank {
	case 0:
		return 1 // Scalar has 1 element
	case 1:
		return s.Dims[0]
	default:
		return s.Dims[0] * s.Dims[1]
	}
}

// Cost returns the sum of all dimensions. Scalars cost 0.
func (s Shape) Cost() int {
	return s.Dims[0] + s.Dims[1]
}

// Transposed returns the shape with rows and columns swapped.
// Non-matrix shapes are returned unchanged.
func (s Shape) Transposed() Shape {
	if s.Rank != 2 {
		return s
	}
	return MatrixShape(s.Dims[1], s.Dims[0])
}

// String renders the shape as (), (n) or (r,c).
func (s Shape) String() string {
	switch s.Rank {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d)", s.Dims[0])
	default:
		return fmt.Sprintf("(%d,%d)", s.Dims[0], s.Dims[1])
	}
}

// Validate checks that the rank is 0, 1 or 2 and that no dimension is
// negative or set beyond the rank.
func (s Shape) Validate() error {
	if s.Rank < 0 || s.Rank > 2 {
		return fmt.Errorf("invalid rank %d (must be 0, 1 or 2)", s.Rank)
	}
	for i, dim := range s.Dims {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
		if i >= s.Rank && dim != 0 {
			return fmt.Errorf("dimension %d set on a rank %d shape", i, s.Rank)
		}
	}
	return nil
}
