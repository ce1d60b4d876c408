package native

import (
	"github.com/born-ml/arith/internal/ffi"
	"github.com/born-ml/arith/internal/tensor"
)

// Foreign routine names. Binary routines take the operation tag after the
// operands, scalar routines a reverse flag after the tag.
const (
	fnBinaryScalars         = "operateBinaryScalars"
	fnBinaryVectors         = "operateBinaryVectors"
	fnBinaryVectorAndScalar = "operateBinaryVectorAndScalar"
	fnBinaryMatrices        = "operateBinaryMatrices"
	fnBinaryMatrixAndScalar = "operateBinaryMatrixAndScalar"
	fnUnaryScalar           = "operateUnaryScalar"
	fnUnaryVector           = "operateUnaryVector"
	fnUnaryMatrix           = "operateUnaryMatrix"
)

// BinaryScalars computes a OP b.
func (b *Backend) BinaryScalars(x, y tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if !op.IsElementwise() {
		return 0, tensor.Unsupported(b.Name(), "BinaryScalars", op)
	}
	res, err := b.layer.Call(fnBinaryScalars, ffi.Number,
		[]ffi.ParamType{ffi.Number, ffi.Number, ffi.Number},
		[]any{x, y, op}, ffi.CallOptions{})
	if err != nil {
		return 0, err
	}
	return res.(tensor.Scalar), nil
}

// BinaryVectors computes result[i] = x[i] OP y[i].
func (b *Backend) BinaryVectors(x, y tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectors", op)
	}
	if err := tensor.CheckVectors(op, x, y); err != nil {
		return nil, err
	}
	res, err := b.layer.Call(fnBinaryVectors, ffi.Vector,
		[]ffi.ParamType{ffi.Vector, ffi.Vector, ffi.Number},
		[]any{x, y, op},
		ffi.CallOptions{ReturnShape: tensor.ShapeOf(x)})
	if err != nil {
		return nil, err
	}
	return res.(tensor.Vector), nil
}

// BinaryVectorScalar combines every element of x with s.
func (b *Backend) BinaryVectorScalar(x tensor.Vector, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectorScalar", op)
	}
	res, err := b.layer.Call(fnBinaryVectorAndScalar, ffi.Vector,
		[]ffi.ParamType{ffi.Vector, ffi.Number, ffi.Number, ffi.Boolean},
		[]any{x, s, op, reverse},
		ffi.CallOptions{ReturnShape: tensor.ShapeOf(x)})
	if err != nil {
		return nil, err
	}
	return res.(tensor.Vector), nil
}

// BinaryMatrices runs an element-wise operation or Product.
func (b *Backend) BinaryMatrices(x, y tensor.Matrix, op tensor.Operation) (tensor.Matrix, error) {
	if !op.IsElementwise() && op != tensor.OpProduct {
		return nil, tensor.Unsupported(b.Name(), "BinaryMatrices", op)
	}
	shape, err := tensor.CheckMatrices(op, x, y)
	if err != nil {
		return nil, err
	}
	res, err := b.layer.Call(fnBinaryMatrices, ffi.Matrix,
		[]ffi.ParamType{ffi.Matrix, ffi.Matrix, ffi.Number},
		[]any{x, y, op},
		ffi.CallOptions{ReturnShape: shape})
	if err != nil {
		return nil, err
	}
	return res.(tensor.Matrix), nil
}

// BinaryMatrixScalar combines every element of x with s.
func (b *Backend) BinaryMatrixScalar(x tensor.Matrix, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Matrix, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryMatrixScalar", op)
	}
	res, err := b.layer.Call(fnBinaryMatrixAndScalar, ffi.Matrix,
		[]ffi.ParamType{ffi.Matrix, ffi.Number, ffi.Number, ffi.Boolean},
		[]any{x, s, op, reverse},
		ffi.CallOptions{ReturnShape: tensor.ShapeOf(x)})
	if err != nil {
		return nil, err
	}
	return res.(tensor.Matrix), nil
}

// UnaryScalar computes exp(x).
func (b *Backend) UnaryScalar(x tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if op != tensor.OpExp {
		return 0, tensor.Unsupported(b.Name(), "UnaryScalar", op)
	}
	res, err := b.layer.Call(fnUnaryScalar, ffi.Number,
		[]ffi.ParamType{ffi.Number, ffi.Number},
		[]any{x, op}, ffi.CallOptions{})
	if err != nil {
		return 0, err
	}
	return res.(tensor.Scalar), nil
}

// UnaryVector computes exp of every element.
func (b *Backend) UnaryVector(x tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if op != tensor.OpExp {
		return nil, tensor.Unsupported(b.Name(), "UnaryVector", op)
	}
	res, err := b.layer.Call(fnUnaryVector, ffi.Vector,
		[]ffi.ParamType{ffi.Vector, ffi.Number},
		[]any{x, op},
		ffi.CallOptions{ReturnShape: tensor.ShapeOf(x)})
	if err != nil {
		return nil, err
	}
	return res.(tensor.Vector), nil
}

// UnaryMatrix computes exp of every element, or the transpose.
func (b *Backend) UnaryMatrix(x tensor.Matrix, op tensor.Operation) (tensor.Matrix, error) {
	opts := ffi.CallOptions{ReturnShape: tensor.ShapeOf(x)}
	switch op {
	case tensor.OpExp:
	case tensor.OpTranspose:
		opts = ffi.CallOptions{Transposed: true}
	default:
		return nil, tensor.Unsupported(b.Name(), "UnaryMatrix", op)
	}
	res, err := b.layer.Call(fnUnaryMatrix, ffi.Matrix,
		[]ffi.ParamType{ffi.Matrix, ffi.Number},
		[]any{x, op}, opts)
	if err != nil {
		return nil, err
	}
	return res.(tensor.Matrix), nil
}
