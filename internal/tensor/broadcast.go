package tensor

import "fmt"

// Reconcile aligns two operands for an element-wise operation.
//
// Rules, in order:
//  1. If either operand is a Scalar, both are returned unchanged; applying
//     the scalar to every element is the caller's job.
//  2. Two vectors must have equal lengths.
//  3. A vector against a matrix becomes a matrix: replicated as every row
//     when its length equals the column count, otherwise spread down the
//     rows (v[i] fills row i) when its length equals the row count. A square
//     matrix takes the row form.
//  4. Two matrices are aligned axis by axis: an axis of size 1 is replicated
//     to match the other operand. Shapes are re-derived after each step, so
//     both axes may be broadcast in sequence.
//
// Any remaining mismatch is a *ShapeError naming both input shapes.
// Replicated rows share storage with the input; callers must not write to
// the results.
//
// Examples:
//
//	(3) + (2,3)     → (2,3), vector as rows
//	(2) + (2,3)     → (2,3), v[i] across row i
//	(1,3) + (2,3)   → (2,3)
//	(2,1) + (2,3)   → (2,3)
//	(1,1) + (2,3)   → (2,3)
//	(2,3) + (2,4)   → error
func Reconcile(a, b Value) (Value, Value, error) {
	sa, sb := ShapeOf(a), ShapeOf(b)

	if sa.IsScalar() || sb.IsScalar() {
		return a, b, nil
	}

	if sa.IsVector() && sb.IsVector() {
		if sa != sb {
			return nil, nil, NewShapeError("broadcast", "vector lengths differ", sa, sb)
		}
		return a, b, nil
	}

	ma, err := promote(a, sb)
	if err != nil {
		return nil, nil, NewShapeError("broadcast", err.Error(), sa, sb)
	}
	mb, err := promote(b, sa)
	if err != nil {
		return nil, nil, NewShapeError("broadcast", err.Error(), sa, sb)
	}

	ma, mb, err = alignMatrices(ma, mb)
	if err != nil {
		return nil, nil, NewShapeError("broadcast", err.Error(), sa, sb)
	}
	return ma, mb, nil
}

// promote turns v into a matrix compatible with other. Matrices are returned
// as they are; vectors are broadcast against a matrix-shaped other.
func promote(v Value, other Shape) (Matrix, error) {
	switch x := v.(type) {
	case Matrix:
		return x, nil
	case Vector:
		rows, cols := other.Rows(), other.Columns()
		switch len(x) {
		case cols:
			return replicateRow(x, rows), nil
		case rows:
			return spreadColumn(x, cols), nil
		default:
			return nil, fmt.Errorf("vector length %d matches neither %d rows nor %d columns", len(x), rows, cols)
		}
	default:
		return nil, fmt.Errorf("cannot promote %T to a matrix", v)
	}
}

// alignMatrices replicates size-1 axes until both shapes agree.
func alignMatrices(a, b Matrix) (Matrix, Matrix, error) {
	for {
		sa, sb := ShapeOf(a), ShapeOf(b)
		if sa == sb {
			return a, b, nil
		}

		if err := checkAxis("row", sa.Rows(), sb.Rows()); err != nil {
			return nil, nil, err
		}
		if err := checkAxis("column", sa.Columns(), sb.Columns()); err != nil {
			return nil, nil, err
		}

		switch {
		case sa.Rows() == 1 && sb.Rows() != 1:
			a = replicateRow(a[0], sb.Rows())
		case sb.Rows() == 1 && sa.Rows() != 1:
			b = replicateRow(b[0], sa.Rows())
		case sa.Columns() == 1 && sb.Columns() != 1:
			a = replicateColumn(a, sb.Columns())
		case sb.Columns() == 1 && sa.Columns() != 1:
			b = replicateColumn(b, sa.Columns())
		default:
			return nil, nil, fmt.Errorf("no broadcastable axis")
		}
	}
}

// checkAxis accepts equal sizes or a size of 1 on either side.
func checkAxis(axis string, a, b int) error {
	if a == b || a == 1 || b == 1 {
		return nil
	}
	return fmt.Errorf("%s counts differ (%d vs %d)", axis, a, b)
}

// replicateRow returns a matrix with rows copies of row.
func replicateRow(row Vector, rows int) Matrix {
	out := make(Matrix, rows)
	for i := range out {
		out[i] = row
	}
	return out
}

// spreadColumn returns a matrix whose row i is v[i] repeated cols times.
func spreadColumn(v Vector, cols int) Matrix {
	out := make(Matrix, len(v))
	for i, x := range v {
		out[i] = Fill(VectorShape(cols), Scalar(x)).(Vector)
	}
	return out
}

// replicateColumn widens a single-column matrix to cols columns.
func replicateColumn(m Matrix, cols int) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = Fill(VectorShape(cols), Scalar(row[0])).(Vector)
	}
	return out
}
