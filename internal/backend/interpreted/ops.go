package interpreted

import (
	"gorgonia.org/vecf32"

	"github.com/born-ml/arith/internal/tensor"
)

// BinaryScalars computes a OP b.
func (b *Backend) BinaryScalars(x, y tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if !op.IsElementwise() {
		return 0, tensor.Unsupported(b.Name(), "BinaryScalars", op)
	}
	return tensor.Scalar(tensor.ApplyBinary(op, float32(x), float32(y))), nil
}

// BinaryVectors computes result[i] = x[i] OP y[i].
func (b *Backend) BinaryVectors(x, y tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectors", op)
	}
	if err := tensor.CheckVectors(op, x, y); err != nil {
		return nil, err
	}
	out := x.Clone()
	operateVectors(out, y, op)
	return out, nil
}

// BinaryVectorScalar combines every element of x with s.
func (b *Backend) BinaryVectorScalar(x tensor.Vector, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectorScalar", op)
	}
	out := x.Clone()
	operateScalar(out, float32(s), op, reverse)
	return out, nil
}

// BinaryMatrices runs an element-wise operation row by row, or Product.
func (b *Backend) BinaryMatrices(x, y tensor.Matrix, op tensor.Operation) (tensor.Matrix, error) {
	if !op.IsElementwise() && op != tensor.OpProduct {
		return nil, tensor.Unsupported(b.Name(), "BinaryMatrices", op)
	}
	shape, err := tensor.CheckMatrices(op, x, y)
	if err != nil {
		return nil, err
	}

	if op == tensor.OpProduct {
		return product(x, y, shape), nil
	}

	out := x.Clone()
	for i := range out {
		operateVectors(out[i], y[i], op)
	}
	return out, nil
}

// BinaryMatrixScalar combines every element of x with s.
func (b *Backend) BinaryMatrixScalar(x tensor.Matrix, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Matrix, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryMatrixScalar", op)
	}
	out := x.Clone()
	for _, row := range out {
		operateScalar(row, float32(s), op, reverse)
	}
	return out, nil
}

// operateVectors computes dst[i] = dst[i] OP src[i] in place.
func operateVectors(dst, src []float32, op tensor.Operation) {
	switch op {
	case tensor.OpAdd:
		vecf32.Add(dst, src)
	case tensor.OpDivide:
		vecf32.Div(dst, src)
	case tensor.OpMultiply:
		vecf32.Mul(dst, src)
	case tensor.OpSubtract:
		vecf32.Sub(dst, src)
	}
}

// operateScalar computes dst[i] = dst[i] OP s, or s OP dst[i] when reverse
// is set, in place.
func operateScalar(dst []float32, s float32, op tensor.Operation, reverse bool) {
	switch op {
	case tensor.OpAdd:
		vecf32.Trans(dst, s)
	case tensor.OpMultiply:
		vecf32.Scale(dst, s)
	case tensor.OpSubtract:
		if reverse {
			vecf32.TransInvR(dst, s)
		} else {
			vecf32.TransInv(dst, s)
		}
	case tensor.OpDivide:
		if reverse {
			vecf32.ScaleInvR(dst, s)
		} else {
			vecf32.ScaleInv(dst, s)
		}
	}
}
