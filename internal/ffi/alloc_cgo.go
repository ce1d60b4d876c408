//go:build cgo

package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

var errOutOfMemory = errors.New("ffi: calloc failed")

// cHeap allocates with the C allocator.
type cHeap struct{}

// DefaultAllocator returns the C heap allocator.
func DefaultAllocator() (Allocator, error) {
	return cHeap{}, nil
}

// Alloc returns a zeroed buffer of at least size bytes. Zero-sized requests
// still return a unique non-NULL pointer.
func (cHeap) Alloc(size int) (unsafe.Pointer, error) {
	ptr := C.calloc(1, C.size_t(max(size, 1)))
	if ptr == nil {
		return nil, errOutOfMemory
	}
	return ptr, nil
}

// Free releases a buffer returned by Alloc.
func (cHeap) Free(ptr unsafe.Pointer) {
	C.free(ptr)
}
