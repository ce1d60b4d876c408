package interpreted

import (
	"github.com/born-ml/arith/internal/tensor"
)

// product performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N), shape already checked by the caller.
// C[i,j] = sum_k A[i,k] * B[k,j]
func product(a, b tensor.Matrix, shape tensor.Shape) tensor.Matrix {
	m, n := shape.Rows(), shape.Columns()
	k := a.Columns()

	c := make(tensor.Matrix, m)
	for i := 0; i < m; i++ {
		c[i] = make(tensor.Vector, n)
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i][kIdx] * b[kIdx][j]
			}
			c[i][j] = sum
		}
	}
	return c
}
