package tensor

// EngineKind identifies one of the fixed set of compute engines.
type EngineKind int

// Supported engines.
const (
	Interpreted EngineKind = iota
	Native
	Parallel
)

// String returns a human-readable engine name.
func (k EngineKind) String() string {
	switch k {
	case Interpreted:
		return "interpreted"
	case Native:
		return "native"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// ParseEngineKind returns the engine kind with the given name.
func ParseEngineKind(name string) (EngineKind, bool) {
	for k := Interpreted; k <= Parallel; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Engine defines the interface that all compute engines must implement.
// Engines are interchangeable: each one runs the whole operation contract and
// never writes to its inputs.
//
// Implementations:
//   - interpreted: pure Go loops, lowest fixed cost
//   - native: C routines behind the foreign memory marshaling layer
//   - parallel: memoized data-parallel kernels, one unit per output element
type Engine interface {
	// Element-wise binary operations. A reverse flag makes the scalar the
	// left operand: reverse=true computes scalar OP element.
	BinaryScalars(a, b Scalar, op Operation) (Scalar, error)
	BinaryVectors(a, b Vector, op Operation) (Vector, error)
	BinaryVectorScalar(a Vector, b Scalar, op Operation, reverse bool) (Vector, error)
	BinaryMatrixScalar(a Matrix, b Scalar, op Operation, reverse bool) (Matrix, error)

	// BinaryMatrices runs element-wise operations on equal shapes and
	// Product on (M, K) × (K, N).
	BinaryMatrices(a, b Matrix, op Operation) (Matrix, error)

	// Unary operations. Exp is supported at every rank, Transpose only on
	// matrices.
	UnaryScalar(a Scalar, op Operation) (Scalar, error)
	UnaryVector(a Vector, op Operation) (Vector, error)
	UnaryMatrix(a Matrix, op Operation) (Matrix, error)

	// Metadata
	Name() string
	Kind() EngineKind
}
