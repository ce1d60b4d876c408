// Package ffi copies Go values into foreign memory, calls named native
// routines with the expanded argument list and copies the results back.
//
// Every buffer allocated for a call is recorded in an ordered worklist that
// is drained when the call returns, including on error or panic. No foreign
// buffer outlives the call that allocated it.
//
// Argument expansion:
//
//	Number  -> one numeric word (float32 scalar or integer tag)
//	Boolean -> one numeric word (0 or 1)
//	Vector  -> (pointer, length)
//	Matrix  -> (pointer to row-pointer table, rows, columns)
//
// Vector and Matrix returns are written by the routine into an output buffer
// the layer allocates from CallOptions and appends as the last argument.
package ffi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/born-ml/arith/internal/tensor"
)

// ErrUnavailable is returned when the binary was built without cgo.
var ErrUnavailable = errors.New("ffi: native routines not available (built without cgo)")

// ParamType declares how an argument or return value crosses the boundary.
type ParamType int

// Supported parameter types.
const (
	Number ParamType = iota
	Vector
	Matrix
	Boolean
)

// String returns a human-readable name for the parameter type.
func (t ParamType) String() string {
	switch t {
	case Number:
		return "number"
	case Vector:
		return "vector"
	case Matrix:
		return "matrix"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// CallOptions describes the result of a foreign call.
type CallOptions struct {
	// ReturnShape is the shape of a Vector or Matrix return value.
	ReturnShape tensor.Shape

	// Transposed derives the return shape from the first matrix argument
	// with rows and columns swapped. ReturnShape is ignored when set.
	Transposed bool
}

// Allocator provides foreign memory.
type Allocator interface {
	// Alloc returns a zeroed buffer of at least size bytes.
	Alloc(size int) (unsafe.Pointer, error)
	// Free releases a buffer returned by Alloc.
	Free(ptr unsafe.Pointer)
}

// Stats reports buffer bookkeeping of a Layer.
type Stats struct {
	Allocations int64 // Buffers allocated
	Releases    int64 // Buffers freed
	Calls       int64 // Foreign calls attempted
	Failures    int64 // Calls that returned an error
}

// Live returns the number of buffers currently allocated.
func (s Stats) Live() int64 {
	return s.Allocations - s.Releases
}

// Layer marshals values across the foreign boundary.
type Layer struct {
	alloc Allocator

	allocations atomic.Int64
	releases    atomic.Int64
	calls       atomic.Int64
	failures    atomic.Int64
}

// NewLayer creates a marshaling layer backed by alloc.
func NewLayer(alloc Allocator) *Layer {
	return &Layer{alloc: alloc}
}

// Stats returns a snapshot of the layer counters.
func (l *Layer) Stats() Stats {
	return Stats{
		Allocations: l.allocations.Load(),
		Releases:    l.releases.Load(),
		Calls:       l.calls.Load(),
		Failures:    l.failures.Load(),
	}
}

// word is one expanded foreign argument or return value.
type word struct {
	ptr unsafe.Pointer
	num float64
}

// Call invokes the foreign routine name.
//
// types declares each argument in args. ret declares the return value:
// Number returns tensor.Scalar, Boolean returns bool, Vector returns
// tensor.Vector and Matrix returns tensor.Matrix. Failures are reported as
// *tensor.MarshalingError after all buffers have been released.
func (l *Layer) Call(name string, ret ParamType, types []ParamType, args []any, opts CallOptions) (result any, err error) {
	l.calls.Add(1)

	wl := newWorklist(l)
	defer wl.release()
	defer func() {
		if err != nil {
			l.failures.Add(1)
			slog.Debug("ffi: foreign call failed", "func", name, "err", err)
		}
	}()

	if len(types) != len(args) {
		return nil, marshalingError(name, fmt.Sprintf("%d parameter types for %d arguments", len(types), len(args)), nil)
	}

	words := make([]word, 0, 3*len(args)+1)
	var firstMatrix tensor.Shape
	for i, t := range types {
		words, err = wl.marshal(words, t, args[i])
		if err != nil {
			return nil, marshalingError(name, fmt.Sprintf("argument %d (%s)", i, t), err)
		}
		if m, ok := args[i].(tensor.Matrix); ok && t == Matrix && firstMatrix.Rank == 0 {
			firstMatrix = tensor.ShapeOf(m)
		}
	}

	shape := opts.ReturnShape
	if opts.Transposed {
		shape = firstMatrix.Transposed()
	}

	switch ret {
	case Vector:
		out, err := wl.allocVector(shape.Rows())
		if err != nil {
			return nil, marshalingError(name, "return buffer", err)
		}
		words = append(words, word{ptr: out})
	case Matrix:
		out, err := wl.allocMatrix(shape.Rows(), shape.Columns())
		if err != nil {
			return nil, marshalingError(name, "return buffer", err)
		}
		words = append(words, word{ptr: out})
	}

	fn, ok := lookup(name)
	if !ok {
		return nil, marshalingError(name, "no such foreign function", nil)
	}
	if fn.arity != len(words) {
		return nil, marshalingError(name, fmt.Sprintf("expects %d words, got %d", fn.arity, len(words)), nil)
	}

	res := fn.call(words)

	switch ret {
	case Number:
		return tensor.Scalar(res.num), nil
	case Boolean:
		return res.num != 0, nil
	case Vector:
		if res.ptr == nil {
			return nil, marshalingError(name, "routine returned NULL", nil)
		}
		return readVector(res.ptr, shape.Rows()), nil
	case Matrix:
		if res.ptr == nil {
			return nil, marshalingError(name, "routine returned NULL", nil)
		}
		return readMatrix(res.ptr, shape.Rows(), shape.Columns()), nil
	default:
		return nil, marshalingError(name, fmt.Sprintf("unsupported return type %s", ret), nil)
	}
}

func marshalingError(name, reason string, err error) error {
	return &tensor.MarshalingError{Func: name, Reason: reason, Err: err}
}

// readVector copies n float32 values starting at ptr.
func readVector(ptr unsafe.Pointer, n int) tensor.Vector {
	out := make(tensor.Vector, n)
	//nolint:gosec // unsafe.Slice over a foreign buffer of n floats
	copy(out, unsafe.Slice((*float32)(ptr), n))
	return out
}

// readMatrix copies a rows×cols matrix from a row-pointer table.
func readMatrix(ptr unsafe.Pointer, rows, cols int) tensor.Matrix {
	//nolint:gosec // unsafe.Slice over a foreign table of row pointers
	table := unsafe.Slice((*unsafe.Pointer)(ptr), rows)
	out := make(tensor.Matrix, rows)
	for i, row := range table {
		out[i] = readVector(row, cols)
	}
	return out
}
