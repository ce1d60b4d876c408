package dispatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/arith/internal/backend/interpreted"
	"github.com/born-ml/arith/internal/backend/native"
	"github.com/born-ml/arith/internal/backend/parallel"
	"github.com/born-ml/arith/internal/config"
	workers "github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/internal/selector"
	"github.com/born-ml/arith/internal/tensor"
)

// pinned returns a dispatcher that sends every shape pair to e.
func pinned(e tensor.Engine) *Dispatcher {
	return New(selector.New(-1, e, e))
}

// dispatchers returns one pinned dispatcher per available engine.
func dispatchers(t *testing.T) map[string]*Dispatcher {
	t.Helper()
	out := map[string]*Dispatcher{
		"interpreted": pinned(interpreted.New()),
		"parallel":    pinned(parallel.New(workers.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1})),
	}
	if nat, err := native.New(); err == nil {
		out["native"] = pinned(nat)
	}
	return out
}

// tolerance is relative to the expected magnitude. Engines use different
// libm implementations, so large results may differ by an ulp.
const tolerance = 1e-5

func assertClose(t *testing.T, want, got float32, msgAndArgs ...any) {
	t.Helper()
	delta := tolerance * math.Max(1, math.Abs(float64(want)))
	assert.InDelta(t, want, got, delta, msgAndArgs...)
}

func assertValueClose(t *testing.T, want, got tensor.Value) {
	t.Helper()
	require.Equal(t, tensor.ShapeOf(want), tensor.ShapeOf(got))
	switch w := want.(type) {
	case tensor.Scalar:
		assertClose(t, float32(w), float32(got.(tensor.Scalar)))
	case tensor.Vector:
		g := got.(tensor.Vector)
		for i := range w {
			assertClose(t, w[i], g[i], "element %d", i)
		}
	case tensor.Matrix:
		g := got.(tensor.Matrix)
		for i := range w {
			for j := range w[i] {
				assertClose(t, w[i][j], g[i][j], "element [%d][%d]", i, j)
			}
		}
	}
}

var elementwise = []tensor.Operation{tensor.OpAdd, tensor.OpDivide, tensor.OpMultiply, tensor.OpSubtract}

func TestBinary_ScalarsAgreeAcrossEngines(t *testing.T) {
	ds := dispatchers(t)
	ref := ds["interpreted"]

	pairs := [][2]tensor.Scalar{{3, 4}, {-2.5, 0.5}, {1e3, 7}, {0, 9}}
	for name, d := range ds {
		for _, op := range elementwise {
			for _, p := range pairs {
				want, err := ref.Binary(p[0], p[1], op)
				require.NoError(t, err)
				got, err := d.Binary(p[0], p[1], op)
				require.NoError(t, err, "%s %s", name, op)
				assertValueClose(t, want, got)
			}
		}
	}
}

func TestBinary_Commutativity(t *testing.T) {
	a := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}
	b := tensor.Vector{0.5, -1, 2}

	for name, d := range dispatchers(t) {
		t.Run(name, func(t *testing.T) {
			for _, op := range []tensor.Operation{tensor.OpAdd, tensor.OpMultiply} {
				ab, err := d.Binary(a, b, op)
				require.NoError(t, err)
				ba, err := d.Binary(b, a, op)
				require.NoError(t, err)
				assertValueClose(t, ab, ba)
			}

			ab, err := d.Binary(a, b, tensor.OpSubtract)
			require.NoError(t, err)
			ba, err := d.Binary(b, a, tensor.OpSubtract)
			require.NoError(t, err)
			neg, err := d.Binary(tensor.Scalar(-1), ba, tensor.OpMultiply)
			require.NoError(t, err)
			assertValueClose(t, ab, neg)
		})
	}
}

func TestBinary_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b tensor.Value
		op   tensor.Operation
		want tensor.Value
	}{
		{"scalar plus vector", tensor.Scalar(2), tensor.Vector{1, 2, 3}, tensor.OpAdd, tensor.Vector{3, 4, 5}},
		{"vector plus scalar", tensor.Vector{1, 2, 3}, tensor.Scalar(2), tensor.OpAdd, tensor.Vector{3, 4, 5}},
		{"scalar over vector", tensor.Scalar(2), tensor.Vector{2, 4, 8}, tensor.OpDivide, tensor.Vector{1, 0.5, 0.25}},
		{"vector over scalar", tensor.Vector{2, 4, 8}, tensor.Scalar(2), tensor.OpDivide, tensor.Vector{1, 2, 4}},
		{"scalar minus matrix", tensor.Scalar(10), tensor.Matrix{{1, 2}, {3, 4}}, tensor.OpSubtract, tensor.Matrix{{9, 8}, {7, 6}}},
		{"matrix minus scalar", tensor.Matrix{{1, 2}, {3, 4}}, tensor.Scalar(10), tensor.OpSubtract, tensor.Matrix{{-9, -8}, {-7, -6}}},
		{"scalars", tensor.Scalar(6), tensor.Scalar(4), tensor.OpSubtract, tensor.Scalar(2)},
		{
			"row broadcast",
			tensor.Matrix{{1, 2, 3}},
			tensor.Matrix{{1, 2, 3}, {4, 5, 6}},
			tensor.OpAdd,
			tensor.Matrix{{2, 4, 6}, {5, 7, 9}},
		},
		{
			"vector as rows",
			tensor.Vector{10, 20, 30},
			tensor.Matrix{{1, 2, 3}, {4, 5, 6}},
			tensor.OpAdd,
			tensor.Matrix{{11, 22, 33}, {14, 25, 36}},
		},
		{
			"vector down rows",
			tensor.Matrix{{1, 2, 3}, {4, 5, 6}},
			tensor.Vector{10, 100},
			tensor.OpMultiply,
			tensor.Matrix{{10, 20, 30}, {400, 500, 600}},
		},
		{
			"column broadcast",
			tensor.Matrix{{1}, {2}},
			tensor.Matrix{{1, 2, 3}, {4, 5, 6}},
			tensor.OpMultiply,
			tensor.Matrix{{1, 2, 3}, {8, 10, 12}},
		},
		{
			"both axes",
			tensor.Matrix{{1}},
			tensor.Matrix{{1, 2}, {3, 4}},
			tensor.OpSubtract,
			tensor.Matrix{{0, -1}, {-2, -3}},
		},
		{
			"row against column",
			tensor.Matrix{{1, 2, 3}},
			tensor.Matrix{{10}, {20}},
			tensor.OpAdd,
			tensor.Matrix{{11, 12, 13}, {21, 22, 23}},
		},
	}

	for name, d := range dispatchers(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got, err := d.Binary(tt.a, tt.b, tt.op)
				require.NoError(t, err)
				assertValueClose(t, tt.want, got)
			})
		}
	}
}

func TestBinary_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b tensor.Value
	}{
		{"vector lengths", tensor.Vector{1, 2, 3}, tensor.Vector{1}},
		{"matrix columns", tensor.Fill(tensor.MatrixShape(2, 3), 1), tensor.Fill(tensor.MatrixShape(2, 4), 1)},
		{"vector fits no axis", tensor.Vector{1, 2, 3, 4}, tensor.Fill(tensor.MatrixShape(2, 3), 1)},
		{"ragged matrix", tensor.Matrix{{1, 2}, {3}}, tensor.Scalar(1)},
		{"nil operand", nil, tensor.Scalar(1)},
	}

	for name, d := range dispatchers(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got, err := d.Binary(tt.a, tt.b, tensor.OpAdd)
				require.Error(t, err)
				assert.ErrorIs(t, err, tensor.ErrShape)
				assert.Nil(t, got)
			})
		}
	}
}

func TestBinary_UnsupportedOperation(t *testing.T) {
	d := pinned(interpreted.New())

	_, err := d.Binary(tensor.Scalar(1), tensor.Scalar(2), tensor.OpExp)
	assert.ErrorIs(t, err, tensor.ErrUnsupported)

	_, err = d.Binary(tensor.Vector{1}, tensor.Vector{2}, tensor.OpConcat)
	assert.ErrorIs(t, err, tensor.ErrUnsupported)
}

func TestProduct(t *testing.T) {
	a := tensor.Matrix{{2, 4, 8}, {16, 32, 64}}
	b := tensor.Matrix{{3, 6}, {9, 12}, {15, 18}}

	for name, d := range dispatchers(t) {
		t.Run(name, func(t *testing.T) {
			got, err := d.Product(a, b)
			require.NoError(t, err)
			assert.Equal(t, tensor.Matrix{{162, 204}, {1296, 1632}}, got)

			// Binary routes Product the same way.
			got, err = d.Binary(a, b, tensor.OpProduct)
			require.NoError(t, err)
			assert.Equal(t, tensor.Matrix{{162, 204}, {1296, 1632}}, got)

			_, err = d.Product(a, a)
			assert.ErrorIs(t, err, tensor.ErrShape)

			_, err = d.Product(tensor.Vector{1, 2}, b)
			assert.ErrorIs(t, err, tensor.ErrShape)
		})
	}
}

func TestUnary(t *testing.T) {
	m := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}

	for name, d := range dispatchers(t) {
		t.Run(name, func(t *testing.T) {
			tr, err := d.Unary(m, tensor.OpTranspose)
			require.NoError(t, err)
			assert.Equal(t, tensor.Matrix{{1, 4}, {2, 5}, {3, 6}}, tr)

			back, err := d.Unary(tr, tensor.OpTranspose)
			require.NoError(t, err)
			assert.Equal(t, m, back)

			e, err := d.Unary(tensor.Scalar(0), tensor.OpExp)
			require.NoError(t, err)
			assertValueClose(t, tensor.Scalar(1), e)

			e, err = d.Unary(tensor.Vector{0, 1}, tensor.OpExp)
			require.NoError(t, err)
			assertValueClose(t, tensor.Vector{1, 2.7182817}, e)

			_, err = d.Unary(tensor.Vector{1, 2}, tensor.OpTranspose)
			assert.ErrorIs(t, err, tensor.ErrUnsupported)

			_, err = d.Unary(m, tensor.OpAdd)
			assert.ErrorIs(t, err, tensor.ErrUnsupported)
		})
	}
}

func TestUnary_ExpAgreesAcrossEngines(t *testing.T) {
	ds := dispatchers(t)
	ref := ds["interpreted"]

	m := tensor.Matrix{{-4, 0, 1}, {6, 10, 20}}
	want, err := ref.Unary(m, tensor.OpExp)
	require.NoError(t, err)

	for name, d := range ds {
		t.Run(name, func(t *testing.T) {
			got, err := d.Unary(m, tensor.OpExp)
			require.NoError(t, err)
			assertValueClose(t, want, got)
		})
	}
}

func TestBinary_InputsUnchanged(t *testing.T) {
	a := tensor.Vector{1, 2, 3}
	b := tensor.Matrix{{1, 2, 3}, {4, 5, 6}}

	for name, d := range dispatchers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := d.Binary(a, b, tensor.OpAdd)
			require.NoError(t, err)
			assert.Equal(t, tensor.Vector{1, 2, 3}, a)
			assert.Equal(t, tensor.Matrix{{1, 2, 3}, {4, 5, 6}}, b)
		})
	}
}

func TestDispatcher_SelectsByCost(t *testing.T) {
	d := New(selector.New(10, interpreted.New(), parallel.New(workers.Config{})))

	_, err := d.Binary(tensor.Vector{1, 2}, tensor.Vector{3, 4}, tensor.OpAdd)
	require.NoError(t, err)
	big := tensor.Fill(tensor.VectorShape(6), 1)
	_, err = d.Binary(big, big, tensor.OpAdd)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Selector().CacheSize())
	assert.Equal(t, tensor.Interpreted, d.Selector().Select(tensor.VectorShape(2), tensor.VectorShape(2)).Kind())
	assert.Equal(t, tensor.Parallel, d.Selector().Select(tensor.VectorShape(6), tensor.VectorShape(6)).Kind())
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Selector.Heavy = "parallel"
	cfg.Selector.Threshold = 5

	d, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, tensor.Parallel, d.Selector().Heavy().Kind())
	assert.Equal(t, tensor.Interpreted, d.Selector().Light().Kind())
	assert.Equal(t, 5, d.Selector().Threshold())

	// Native is replaced by parallel when cgo is unavailable.
	d, err = NewFromConfig(config.Default())
	require.NoError(t, err)
	if _, nerr := native.New(); nerr == nil {
		assert.Equal(t, tensor.Native, d.Selector().Heavy().Kind())
	} else {
		assert.Equal(t, tensor.Parallel, d.Selector().Heavy().Kind())
	}

	cfg.Selector.Heavy = "interpreted"
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	d := Default()
	require.NotNil(t, d)
	assert.Same(t, d, Default())
	assert.Equal(t, 100, d.Selector().Threshold())
}
