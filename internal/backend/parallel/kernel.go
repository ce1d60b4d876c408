package parallel

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/internal/tensor"
)

// Family groups kernels that share a body.
type Family int

// Kernel families.
const (
	// Elementwise combines two operands of the output shape.
	Elementwise Family = iota
	// ScalarRight combines every element with a scalar: x OP s.
	ScalarRight
	// ScalarLeft combines a scalar with every element: s OP x.
	ScalarLeft
	// Product multiplies (M, K) by (K, N).
	Product
	// Exp applies exp to every element.
	Exp
	// Transpose swaps rows and columns. Keyed by the output shape.
	Transpose
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case Elementwise:
		return "elementwise"
	case ScalarRight:
		return "scalar-right"
	case ScalarLeft:
		return "scalar-left"
	case Product:
		return "product"
	case Exp:
		return "exp"
	case Transpose:
		return "transpose"
	default:
		return "unknown"
	}
}

// KernelKey identifies a compiled kernel.
type KernelKey struct {
	Family Family
	Op     tensor.Operation // Operator tag of the binary families
	Rows   int              // Output rows, 1 for vectors and scalars
	Cols   int              // Output columns
}

func (k KernelKey) String() string {
	return fmt.Sprintf("%s/%s(%d,%d)", k.Family, k.Op, k.Rows, k.Cols)
}

// kernelArgs are the flattened operands of one kernel run.
type kernelArgs struct {
	a, b   []float32
	scalar float32
	inner  int // Product inner dimension
}

// Kernel is a compiled unit of data-parallel work.
type Kernel struct {
	ID  uuid.UUID
	Key KernelKey

	body func(args *kernelArgs, r, c int) float32
}

// run computes every output element and returns them row-major.
func (k *Kernel) run(args *kernelArgs, cfg parallel.Config) []float32 {
	rows, cols := k.Key.Rows, k.Key.Cols
	out := make([]float32, rows*cols)
	parallel.ForGrid(rows, cols, func(r, c int) {
		out[r*cols+c] = k.body(args, r, c)
	}, cfg)
	return out
}

// kernels is shared by every parallel engine.
var kernels = xsync.NewMapOf[KernelKey, *Kernel]()

// KernelCount returns the number of compiled kernels.
func KernelCount() int {
	return kernels.Size()
}

// kernelFor returns the cached kernel for key, compiling it on first use.
func kernelFor(key KernelKey) *Kernel {
	k, _ := kernels.LoadOrCompute(key, func() *Kernel {
		k := compile(key)
		slog.Debug("parallel: kernel compiled", "kernel", key.String(), "id", k.ID)
		return k
	})
	return k
}

func compile(key KernelKey) *Kernel {
	cols, rows := key.Cols, key.Rows
	op := key.Op

	var body func(args *kernelArgs, r, c int) float32
	switch key.Family {
	case Elementwise:
		body = func(args *kernelArgs, r, c int) float32 {
			i := r*cols + c
			return tensor.ApplyBinary(op, args.a[i], args.b[i])
		}
	case ScalarRight:
		body = func(args *kernelArgs, r, c int) float32 {
			return tensor.ApplyBinary(op, args.a[r*cols+c], args.scalar)
		}
	case ScalarLeft:
		body = func(args *kernelArgs, r, c int) float32 {
			return tensor.ApplyBinary(op, args.scalar, args.a[r*cols+c])
		}
	case Product:
		body = func(args *kernelArgs, r, c int) float32 {
			var sum float32
			for k := 0; k < args.inner; k++ {
				sum += args.a[r*args.inner+k] * args.b[k*cols+c]
			}
			return sum
		}
	case Exp:
		body = func(args *kernelArgs, r, c int) float32 {
			return math32.Exp(args.a[r*cols+c])
		}
	case Transpose:
		// Input is (cols, rows).
		body = func(args *kernelArgs, r, c int) float32 {
			return args.a[c*rows+r]
		}
	default:
		panic(fmt.Sprintf("parallel: unknown kernel family %d", key.Family))
	}

	return &Kernel{ID: uuid.New(), Key: key, body: body}
}
