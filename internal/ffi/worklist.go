package ffi

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/arith/internal/tensor"
)

const (
	floatSize   = int(unsafe.Sizeof(float32(0)))
	pointerSize = int(unsafe.Sizeof(unsafe.Pointer(nil)))
)

// worklist records the buffers allocated during one call in allocation
// order and frees all of them on release.
type worklist struct {
	layer *Layer
	ptrs  []unsafe.Pointer
}

func newWorklist(l *Layer) *worklist {
	return &worklist{layer: l}
}

// alloc allocates size bytes and records the buffer.
func (w *worklist) alloc(size int) (unsafe.Pointer, error) {
	ptr, err := w.layer.alloc.Alloc(size)
	if err != nil {
		return nil, err
	}
	w.ptrs = append(w.ptrs, ptr)
	w.layer.allocations.Add(1)
	return ptr, nil
}

// release frees every recorded buffer, oldest first.
func (w *worklist) release() {
	for len(w.ptrs) > 0 {
		ptr := w.ptrs[0]
		w.ptrs = w.ptrs[1:]
		w.layer.alloc.Free(ptr)
		w.layer.releases.Add(1)
	}
}

// allocVector allocates a buffer for n floats.
func (w *worklist) allocVector(n int) (unsafe.Pointer, error) {
	return w.alloc(n * floatSize)
}

// allocMatrix allocates one buffer per row plus the row-pointer table.
func (w *worklist) allocMatrix(rows, cols int) (unsafe.Pointer, error) {
	table, err := w.alloc(rows * pointerSize)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // unsafe.Slice over a foreign table of row pointers
	slots := unsafe.Slice((*unsafe.Pointer)(table), rows)
	for i := range slots {
		row, err := w.allocVector(cols)
		if err != nil {
			return nil, err
		}
		slots[i] = row
	}
	return table, nil
}

// copyVector allocates a buffer and copies v into it.
func (w *worklist) copyVector(v []float32) (unsafe.Pointer, error) {
	ptr, err := w.allocVector(len(v))
	if err != nil {
		return nil, err
	}
	//nolint:gosec // unsafe.Slice over a foreign buffer of len(v) floats
	copy(unsafe.Slice((*float32)(ptr), len(v)), v)
	return ptr, nil
}

// copyMatrix allocates the rows and the row-pointer table and copies m.
func (w *worklist) copyMatrix(m tensor.Matrix) (unsafe.Pointer, error) {
	table, err := w.allocMatrix(m.Rows(), m.Columns())
	if err != nil {
		return nil, err
	}
	//nolint:gosec // unsafe.Slice over a foreign table of row pointers
	slots := unsafe.Slice((*unsafe.Pointer)(table), m.Rows())
	for i, row := range m {
		//nolint:gosec // unsafe.Slice over a foreign buffer of one row
		copy(unsafe.Slice((*float32)(slots[i]), m.Columns()), row)
	}
	return table, nil
}

// marshal expands one argument into foreign words.
func (w *worklist) marshal(words []word, t ParamType, arg any) ([]word, error) {
	switch t {
	case Number:
		n, err := toNumber(arg)
		if err != nil {
			return words, err
		}
		return append(words, word{num: n}), nil
	case Boolean:
		b, ok := arg.(bool)
		if !ok {
			return words, fmt.Errorf("expected bool, got %T", arg)
		}
		n := 0.0
		if b {
			n = 1
		}
		return append(words, word{num: n}), nil
	case Vector:
		var v []float32
		switch x := arg.(type) {
		case tensor.Vector:
			v = x
		case []float32:
			v = x
		default:
			return words, fmt.Errorf("expected vector, got %T", arg)
		}
		ptr, err := w.copyVector(v)
		if err != nil {
			return words, err
		}
		return append(words, word{ptr: ptr}, word{num: float64(len(v))}), nil
	case Matrix:
		m, ok := arg.(tensor.Matrix)
		if !ok {
			return words, fmt.Errorf("expected matrix, got %T", arg)
		}
		ptr, err := w.copyMatrix(m)
		if err != nil {
			return words, err
		}
		return append(words, word{ptr: ptr}, word{num: float64(m.Rows())}, word{num: float64(m.Columns())}), nil
	default:
		return words, fmt.Errorf("unknown parameter type %d", t)
	}
}

func toNumber(arg any) (float64, error) {
	switch x := arg.(type) {
	case tensor.Scalar:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case tensor.Operation:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", arg)
	}
}
