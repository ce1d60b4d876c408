package interpreted

import (
	"github.com/born-ml/arith/internal/tensor"
)

// transpose swaps rows and columns: (R, C) -> (C, R).
func transpose(a tensor.Matrix) tensor.Matrix {
	rows, cols := a.Rows(), a.Columns()
	out := make(tensor.Matrix, cols)
	for i := 0; i < cols; i++ {
		out[i] = make(tensor.Vector, rows)
		for j := 0; j < rows; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}
