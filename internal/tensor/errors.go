package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors. The typed errors below match them with errors.Is.
var (
	ErrShape       = errors.New("incompatible shapes")
	ErrUnsupported = errors.New("operation not implemented")
	ErrMarshaling  = errors.New("foreign call failed")
)

// ShapeError reports operands whose shapes cannot be reconciled.
type ShapeError struct {
	Op     string  // Operation or component that rejected the shapes
	Shapes []Shape // Offending shapes, in operand order
	Reason string  // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	names := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		names[i] = s.String()
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, strings.Join(names, " and "), e.Reason)
}

// Is matches ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// UnsupportedOperationError reports an operation an engine does not implement
// for the requested entry point.
type UnsupportedOperationError struct {
	Engine string    // Engine name
	Entry  string    // Entry point, e.g. "BinaryVectors"
	Op     Operation // Rejected operation
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s: operation %s not implemented", e.Engine, e.Entry, e.Op)
}

// Is matches ErrUnsupported.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupported
}

// MarshalingError reports a failed foreign call. It is only returned after
// every buffer prepared for the call has been released.
type MarshalingError struct {
	Func   string // Foreign function name
	Reason string // What failed
	Err    error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *MarshalingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Func, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Func, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *MarshalingError) Unwrap() error {
	return e.Err
}

// Is matches ErrMarshaling.
func (e *MarshalingError) Is(target error) bool {
	return target == ErrMarshaling
}

// NewShapeError is a shorthand for building a ShapeError.
func NewShapeError(op, reason string, shapes ...Shape) error {
	return &ShapeError{Op: op, Shapes: shapes, Reason: reason}
}

// Unsupported is a shorthand for building an UnsupportedOperationError.
func Unsupported(engine, entry string, op Operation) error {
	return &UnsupportedOperationError{Engine: engine, Entry: entry, Op: op}
}
