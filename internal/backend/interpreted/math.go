package interpreted

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/arith/internal/tensor"
)

// UnaryScalar computes exp(x).
func (b *Backend) UnaryScalar(x tensor.Scalar, op tensor.Operation) (tensor.Scalar, error) {
	if op != tensor.OpExp {
		return 0, tensor.Unsupported(b.Name(), "UnaryScalar", op)
	}
	return tensor.Scalar(math32.Exp(float32(x))), nil
}

// UnaryVector computes element-wise exp.
func (b *Backend) UnaryVector(x tensor.Vector, op tensor.Operation) (tensor.Vector, error) {
	if op != tensor.OpExp {
		return nil, tensor.Unsupported(b.Name(), "UnaryVector", op)
	}
	out := make(tensor.Vector, len(x))
	expInto(out, x)
	return out, nil
}

// UnaryMatrix computes element-wise exp or the transpose.
func (b *Backend) UnaryMatrix(x tensor.Matrix, op tensor.Operation) (tensor.Matrix, error) {
	switch op {
	case tensor.OpExp:
		out := make(tensor.Matrix, len(x))
		for i, row := range x {
			out[i] = make(tensor.Vector, len(row))
			expInto(out[i], row)
		}
		return out, nil
	case tensor.OpTranspose:
		return transpose(x), nil
	default:
		return nil, tensor.Unsupported(b.Name(), "UnaryMatrix", op)
	}
}

func expInto(dst, src []float32) {
	for i, v := range src {
		dst[i] = math32.Exp(v)
	}
}
