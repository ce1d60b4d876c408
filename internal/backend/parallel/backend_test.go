package parallel

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/arith/internal/backend/interpreted"
	"github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/internal/tensor"
)

// testConfig splits even tiny inputs across workers.
func testConfig() parallel.Config {
	return parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
}

// tolerance is relative to the expected magnitude. Engines use different
// libm implementations, so large results may differ by an ulp.
const tolerance = 1e-5

// assertClose compares element-wise with a delta scaled by |want|.
func assertClose(t *testing.T, want, got []float32, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want), msgAndArgs...)
	for i := range want {
		delta := tolerance * math.Max(1, math.Abs(float64(want[i])))
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func assertMatrixClose(t *testing.T, want, got tensor.Matrix) {
	t.Helper()
	require.Equal(t, tensor.ShapeOf(want), tensor.ShapeOf(got))
	for i := range want {
		assertClose(t, want[i], got[i], "row %d", i)
	}
}

func TestBackend_Metadata(t *testing.T) {
	b := New(testConfig())
	assert.Equal(t, "parallel", b.Name())
	assert.Equal(t, tensor.Parallel, b.Kind())
	assert.Equal(t, 4, b.Config().NumWorkers)
}

func TestBackend_MatchesInterpreted(t *testing.T) {
	b := New(testConfig())
	ref := interpreted.New()

	v1 := tensor.Vector{1, 2, 3, 4}
	v2 := tensor.Vector{0.5, -1, 8, 2}
	m1 := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}
	m2 := tensor.Matrix{{6, 5, 4}, {3, 2, 1}}

	for _, op := range []tensor.Operation{tensor.OpAdd, tensor.OpDivide, tensor.OpMultiply, tensor.OpSubtract} {
		t.Run(op.String(), func(t *testing.T) {
			s, err := b.BinaryScalars(7, 2, op)
			require.NoError(t, err)
			want, _ := ref.BinaryScalars(7, 2, op)
			assertClose(t, []float32{float32(want)}, []float32{float32(s)})

			v, err := b.BinaryVectors(v1, v2, op)
			require.NoError(t, err)
			wantV, _ := ref.BinaryVectors(v1, v2, op)
			assertClose(t, wantV, v)

			for _, reverse := range []bool{false, true} {
				v, err = b.BinaryVectorScalar(v1, 4, op, reverse)
				require.NoError(t, err)
				wantV, _ = ref.BinaryVectorScalar(v1, 4, op, reverse)
				assertClose(t, wantV, v)

				m, err := b.BinaryMatrixScalar(m1, 4, op, reverse)
				require.NoError(t, err)
				wantM, _ := ref.BinaryMatrixScalar(m1, 4, op, reverse)
				assertMatrixClose(t, wantM, m)
			}

			m, err := b.BinaryMatrices(m1, m2, op)
			require.NoError(t, err)
			wantM, _ := ref.BinaryMatrices(m1, m2, op)
			assertMatrixClose(t, wantM, m)
		})
	}
}

func TestBackend_Product(t *testing.T) {
	b := New(testConfig())

	a := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}
	c := tensor.Matrix{{7, 8}, {9, 10}, {11, 12}}

	got, err := b.BinaryMatrices(a, c, tensor.OpProduct)
	require.NoError(t, err)
	assert.Equal(t, tensor.Matrix{{58, 64}, {139, 154}}, got)

	_, err = b.BinaryMatrices(a, a, tensor.OpProduct)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestBackend_Unary(t *testing.T) {
	b := New(testConfig())

	s, err := b.UnaryScalar(0, tensor.OpExp)
	require.NoError(t, err)
	assert.Equal(t, tensor.Scalar(1), s)

	v, err := b.UnaryVector(tensor.Vector{0, 1}, tensor.OpExp)
	require.NoError(t, err)
	assertClose(t, []float32{1, 2.7182817}, v)

	tr, err := b.UnaryMatrix(tensor.Matrix{{1, 2, 3}, {4, 5, 6}}, tensor.OpTranspose)
	require.NoError(t, err)
	assert.Equal(t, tensor.Matrix{{1, 4}, {2, 5}, {3, 6}}, tr)

	_, err = b.UnaryVector(tensor.Vector{1}, tensor.OpTranspose)
	assert.ErrorIs(t, err, tensor.ErrUnsupported)
}

func TestBackend_Unsupported(t *testing.T) {
	b := New(testConfig())

	_, err := b.BinaryVectors(tensor.Vector{1}, tensor.Vector{2}, tensor.OpConcat)
	require.Error(t, err)

	var ue *tensor.UnsupportedOperationError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "parallel", ue.Engine)
	assert.Equal(t, tensor.OpConcat, ue.Op)

	_, err = b.BinaryMatrixScalar(tensor.Matrix{{1}}, 1, tensor.OpProduct, false)
	assert.ErrorIs(t, err, tensor.ErrUnsupported)
}

func TestKernelCache(t *testing.T) {
	b := New(testConfig())

	// A shape no other test uses.
	a := tensor.Fill(tensor.MatrixShape(7, 13), 2).(tensor.Matrix)
	c := tensor.Fill(tensor.MatrixShape(7, 13), 3).(tensor.Matrix)

	_, err := b.BinaryMatrices(a, c, tensor.OpMultiply)
	require.NoError(t, err)
	first := kernelFor(KernelKey{Family: Elementwise, Op: tensor.OpMultiply, Rows: 7, Cols: 13})
	count := KernelCount()

	// Same family and shape from another engine instance reuses the kernel.
	other := New(parallel.Config{})
	out, err := other.BinaryMatrices(c, a, tensor.OpMultiply)
	require.NoError(t, err)
	assert.Equal(t, tensor.Fill(tensor.MatrixShape(7, 13), 6), tensor.Value(out))
	assert.Equal(t, count, KernelCount())
	assert.Equal(t, first.ID, kernelFor(first.Key).ID)

	// A different operator tag compiles a new kernel.
	_, err = b.BinaryMatrices(a, c, tensor.OpSubtract)
	require.NoError(t, err)
	assert.Equal(t, count+1, KernelCount())
}

func TestKernelCache_Concurrent(t *testing.T) {
	key := KernelKey{Family: Exp, Op: tensor.OpExp, Rows: 3, Cols: 17}

	var wg sync.WaitGroup
	ids := make([]string, 32)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = kernelFor(key).ID.String()
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestBackend_EmptyShapes(t *testing.T) {
	b := New(testConfig())

	v, err := b.BinaryVectors(tensor.Vector{}, tensor.Vector{}, tensor.OpAdd)
	require.NoError(t, err)
	assert.Empty(t, v)

	m, err := b.UnaryMatrix(tensor.Matrix{}, tensor.OpExp)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestBackend_InputsUnchanged(t *testing.T) {
	b := New(testConfig())

	a := tensor.Matrix{{1, 2}, {3, 4}}
	_, err := b.BinaryMatrixScalar(a, 10, tensor.OpAdd, true)
	require.NoError(t, err)
	assert.Equal(t, tensor.Matrix{{1, 2}, {3, 4}}, a)
}

func TestKernelKey_String(t *testing.T) {
	key := KernelKey{Family: Product, Op: tensor.OpProduct, Rows: 2, Cols: 3}
	assert.Equal(t, "product/product(2,3)", key.String())
}
