//go:build !cgo

package ffi

// foreignFunc is a native routine taking a fixed number of expanded words.
type foreignFunc struct {
	arity int
	call  func(w []word) word
}

// DefaultAllocator reports ErrUnavailable without cgo.
func DefaultAllocator() (Allocator, error) {
	return nil, ErrUnavailable
}

func lookup(string) (foreignFunc, bool) {
	return foreignFunc{}, false
}
