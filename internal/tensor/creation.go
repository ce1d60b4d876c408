package tensor

// Fill creates a value of the given shape with every element set to value.
//
// Example:
//
//	m := tensor.Fill(tensor.MatrixShape(2, 3), 7) // [[7 7 7] [7 7 7]]
func Fill(shape Shape, value Scalar) Value {
	switch shape.Rank {
	case 0:
		return value
	case 1:
		return fillVector(shape.Rows(), float32(value))
	default:
		m := make(Matrix, shape.Rows())
		for i := range m {
			m[i] = fillVector(shape.Columns(), float32(value))
		}
		return m
	}
}

// Zeros creates a value of the given shape filled with zeros.
func Zeros(shape Shape) Value {
	return Fill(shape, 0)
}

// Ones creates a value of the given shape filled with ones.
func Ones(shape Shape) Value {
	return Fill(shape, 1)
}

// FromSlice copies data into a new vector.
func FromSlice(data []float32) Vector {
	return Vector(data).Clone()
}

// FromRows copies rows into a new matrix. It returns a *ShapeError if the
// rows have different lengths.
func FromRows(rows [][]float32) (Matrix, error) {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		m[i] = FromSlice(row)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func fillVector(n int, value float32) Vector {
	v := make(Vector, n)
	if value == 0 {
		return v // Already zero-initialized by make()
	}
	for i := range v {
		v[i] = value
	}
	return v
}
