package parallel

import (
	"github.com/born-ml/arith/internal/tensor"
)

// BinaryScalars computes a OP b with a 1×1 kernel.
func (b *Backend) BinaryScalars(x, y tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if !op.IsElementwise() {
		return 0, tensor.Unsupported(b.Name(), "BinaryScalars", op)
	}
	k := kernelFor(KernelKey{Family: ScalarRight, Op: op, Rows: 1, Cols: 1})
	out := k.run(&kernelArgs{a: []float32{float32(x)}, scalar: float32(y)}, b.cfg)
	return tensor.Scalar(out[0]), nil
}

// BinaryVectors computes result[i] = x[i] OP y[i].
func (b *Backend) BinaryVectors(x, y tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectors", op)
	}
	if err := tensor.CheckVectors(op, x, y); err != nil {
		return nil, err
	}
	k := kernelFor(KernelKey{Family: Elementwise, Op: op, Rows: 1, Cols: len(x)})
	return k.run(&kernelArgs{a: x, b: y}, b.cfg), nil
}

// BinaryVectorScalar combines every element of x with s.
func (b *Backend) BinaryVectorScalar(x tensor.Vector, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Vector, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryVectorScalar", op)
	}
	k := kernelFor(KernelKey{Family: scalarFamily(reverse), Op: op, Rows: 1, Cols: len(x)})
	return k.run(&kernelArgs{a: x, scalar: float32(s)}, b.cfg), nil
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

	key := KernelKey{Family: Elementwise, Op: op, Rows: shape.Rows(), Cols: shape.Columns()}
	args := &kernelArgs{a: x.Flatten(), b: y.Flatten()}
	if op == tensor.OpProduct {
		key.Family = Product
		args.inner = x.Columns()
	}

	out := kernelFor(key).run(args, b.cfg)
	return tensor.Reshape(out, shape.Rows(), shape.Columns()), nil
}

// BinaryMatrixScalar combines every element of x with s.
func (b *Backend) BinaryMatrixScalar(x tensor.Matrix, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Matrix, error) {
	if !op.IsElementwise() {
		return nil, tensor.Unsupported(b.Name(), "BinaryMatrixScalar", op)
	}
	rows, cols := x.Rows(), x.Columns()
	k := kernelFor(KernelKey{Family: scalarFamily(reverse), Op: op, Rows: rows, Cols: cols})
	out := k.run(&kernelArgs{a: x.Flatten(), scalar: float32(s)}, b.cfg)
	return tensor.Reshape(out, rows, cols), nil
}

// UnaryScalar computes exp(x).
func (b *Backend) UnaryScalar(x tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if op != tensor.OpExp {
		return 0, tensor.Unsupported(b.Name(), "UnaryScalar", op)
	}
	k := kernelFor(KernelKey{Family: Exp, Op: op, Rows: 1, Cols: 1})
	return tensor.Scalar(k.run(&kernelArgs{a: []float32{float32(x)}}, b.cfg)[0]), nil
}

// UnaryVector computes exp of every element.
func (b *Backend) UnaryVector(x tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if op != tensor.OpExp {
		return nil, tensor.Unsupported(b.Name(), "UnaryVector", op)
	}
	k := kernelFor(KernelKey{Family: Exp, Op: op, Rows: 1, Cols: len(x)})
	return k.run(&kernelArgs{a: x}, b.cfg), nil
}

// UnaryMatrix computes exp of every element, or the transpose.
func (b *Backend) UnaryMatrix(x tensor.Matrix, op tensor.Operation) (tensor.Matrix, error) {
	shape := tensor.ShapeOf(x)
	var key KernelKey
	switch op {
	case tensor.OpExp:
		key = KernelKey{Family: Exp, Op: op, Rows: shape.Rows(), Cols: shape.Columns()}
	case tensor.OpTranspose:
		shape = shape.Transposed()
		key = KernelKey{Family: Transpose, Op: op, Rows: shape.Rows(), Cols: shape.Columns()}
	default:
		return nil, tensor.Unsupported(b.Name(), "UnaryMatrix", op)
	}
	out := kernelFor(key).run(&kernelArgs{a: x.Flatten()}, b.cfg)
	return tensor.Reshape(out, shape.Rows(), shape.Columns()), nil
}

func scalarFamily(reverse bool) Family {
	if reverse {
		return ScalarLeft
	}
	return ScalarRight
}
