package tensor

// Concat joins two vectors or matrices.
//
// Two vectors are always joined end to end. Otherwise axis 0 stacks rows
// (a vector counts as a single row and must match the matrix column count)
// and axis 1 appends columns (a vector counts as a single column and must
// match the matrix row count). Scalars and axes other than 0 and 1 are
// rejected with a *ShapeError.
//
// Example:
//
//	a := Matrix{{1, 2}, {3, 4}}
//	c, _ := Concat(a, Vector{5, 6}, 0) // [[1 2] [3 4] [5 6]]
//	d, _ := Concat(a, Vector{5, 6}, 1) // [[1 2 5] [3 4 6]]
func Concat(a, b Value, axis int) (Value, error) {
	sa, sb := ShapeOf(a), ShapeOf(b)
	op := OpConcat.String()

	if axis < 0 || axis > 1 {
		return nil, NewShapeError(op, "axis must be 0 or 1", sa, sb)
	}
	if sa.IsScalar() || sb.IsScalar() {
		return nil, NewShapeError(op, "only vectors and matrices can be concatenated", sa, sb)
	}

	if sa.IsVector() && sb.IsVector() {
		return concatVectors(a.(Vector), b.(Vector)), nil
	}

	if axis == 0 {
		return concatRows(a, b, sa, sb)
	}
	return concatColumns(a, b, sa, sb)
}

func concatRows(a, b Value, sa, sb Shape) (Value, error) {
	op := OpConcat.String()
	ma, mb := asRows(a), asRows(b)
	if ShapeOf(ma).Columns() != ShapeOf(mb).Columns() {
		return nil, NewShapeError(op, "column counts differ", sa, sb)
	}

	out := make(Matrix, 0, len(ma)+len(mb))
	for _, row := range ma {
		out = append(out, row.Clone())
	}
	for _, row := range mb {
		out = append(out, row.Clone())
	}
	return out, nil
}

func concatColumns(a, b Value, sa, sb Shape) (Value, error) {
	op := OpConcat.String()
	ma, mb := asColumns(a), asColumns(b)
	if len(ma) != len(mb) {
		return nil, NewShapeError(op, "row counts differ", sa, sb)
	}

	out := make(Matrix, len(ma))
	for i := range ma {
		out[i] = concatVectors(ma[i], mb[i])
	}
	return out, nil
}

// asRows views a vector as a one-row matrix.
func asRows(v Value) Matrix {
	if vec, ok := v.(Vector); ok {
		return Matrix{vec}
	}
	return v.(Matrix)
}

// asColumns views a vector as a one-column matrix.
func asColumns(v Value) Matrix {
	vec, ok := v.(Vector)
	if !ok {
		return v.(Matrix)
	}
	out := make(Matrix, len(vec))
	for i, x := range vec {
		out[i] = Vector{x}
	}
	return out
}

func concatVectors(a, b Vector) Vector {
	out := make(Vector, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
