// Package dispatch routes an operation to the engine chosen for its operand
// shapes and to the engine entry point matching their ranks.
package dispatch

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/born-ml/arith/internal/backend/interpreted"
	"github.com/born-ml/arith/internal/backend/native"
	"github.com/born-ml/arith/internal/backend/parallel"
	"github.com/born-ml/arith/internal/config"
	"github.com/born-ml/arith/internal/selector"
	"github.com/born-ml/arith/internal/tensor"
)

// Dispatcher runs operations on the engine picked by its selector.
// It is safe for concurrent use.
type Dispatcher struct {
	sel *selector.Selector
}

// New creates a dispatcher around sel.
func New(sel *selector.Selector) *Dispatcher {
	return &Dispatcher{sel: sel}
}

// NewFromConfig builds the engines and selector described by cfg.
//
// When the native engine is configured but unavailable, the parallel engine
// takes its place for the lifetime of the dispatcher.
func NewFromConfig(cfg *config.Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	par := parallel.New(cfg.Parallel.Options())

	var heavy tensor.Engine = par
	if cfg.HeavyEngine() == tensor.Native {
		nat, err := native.New()
		if err != nil {
			slog.Warn("dispatch: native engine unavailable, using parallel engine", "err", err)
		} else {
			heavy = nat
		}
	}

	sel := selector.New(cfg.Selector.Threshold, interpreted.New(), heavy)
	return New(sel), nil
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide dispatcher built from config.Default.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		d, err := NewFromConfig(config.Default())
		if err != nil {
			panic(fmt.Sprintf("dispatch: default configuration: %v", err))
		}
		defaultDispatcher = d
	})
	return defaultDispatcher
}

// Selector returns the selector used by d.
func (d *Dispatcher) Selector() *selector.Selector {
	return d.sel
}

// Binary computes a OP b for an element-wise operation or Product.
//
// A scalar operand is combined with every element of the other operand.
// Otherwise the operands are reconciled by broadcasting first.
func (d *Dispatcher) Binary(a, b tensor.Value, op tensor.Operation) (tensor.Value, error) {
	if op == tensor.OpProduct {
		return d.Product(a, b)
	}
	if !op.IsElementwise() {
		return nil, tensor.Unsupported("dispatch", "Binary", op)
	}
	if err := checkOperands(op, a, b); err != nil {
		return nil, err
	}

	e := d.sel.Select(tensor.ShapeOf(a), tensor.ShapeOf(b))

	// Scalar on the left: s OP x.
	if s, ok := a.(tensor.Scalar); ok {
		return withScalar(e, b, s, op, true)
	}
	if s, ok := b.(tensor.Scalar); ok {
		return withScalar(e, a, s, op, false)
	}

	x, y, err := tensor.Reconcile(a, b)
	if err != nil {
		return nil, err
	}

	switch xv := x.(type) {
	case tensor.Vector:
		return result(e.BinaryVectors(xv, y.(tensor.Vector), op))
	default:
		return result(e.BinaryMatrices(x.(tensor.Matrix), y.(tensor.Matrix), op))
	}
}

// withScalar combines every element of x with s. reverse puts s on the left.
func withScalar(e tensor.Engine, x tensor.Value, s tensor.Scalar, op tensor.Operation, reverse bool) (tensor.Value, error) {
	switch xv := x.(type) {
	case tensor.Scalar:
		if reverse {
			return result(e.BinaryScalars(s, xv, op))
		}
		return result(e.BinaryScalars(xv, s, op))
	case tensor.Vector:
		return result(e.BinaryVectorScalar(xv, s, op, reverse))
	default:
		return result(e.BinaryMatrixScalar(x.(tensor.Matrix), s, op, reverse))
	}
}

// Product computes the matrix product a × b.
func (d *Dispatcher) Product(a, b tensor.Value) (tensor.Value, error) {
	op := tensor.OpProduct
	if err := checkOperands(op, a, b); err != nil {
		return nil, err
	}

	ma, okA := a.(tensor.Matrix)
	mb, okB := b.(tensor.Matrix)
	if !okA || !okB {
		return nil, tensor.NewShapeError(op.String(), "both operands must be matrices",
			tensor.ShapeOf(a), tensor.ShapeOf(b))
	}
	if _, err := tensor.CheckMatrices(op, ma, mb); err != nil {
		return nil, err
	}

	e := d.sel.Select(tensor.ShapeOf(a), tensor.ShapeOf(b))
	return result(e.BinaryMatrices(ma, mb, op))
}

// Unary computes op(a). Exp accepts every rank, Transpose only matrices.
func (d *Dispatcher) Unary(a tensor.Value, op tensor.Operation) (tensor.Value, error) {
	if !op.IsUnary() {
		return nil, tensor.Unsupported("dispatch", "Unary", op)
	}
	if err := checkOperands(op, a); err != nil {
		return nil, err
	}

	shape := tensor.ShapeOf(a)
	e := d.sel.Select(shape, tensor.ScalarShape())

	switch x := a.(type) {
	case tensor.Scalar:
		return result(e.UnaryScalar(x, op))
	case tensor.Vector:
		return result(e.UnaryVector(x, op))
	default:
		return result(e.UnaryMatrix(a.(tensor.Matrix), op))
	}
}

// checkOperands rejects nil operands and ragged matrices.
func checkOperands(op tensor.Operation, values ...tensor.Value) error {
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			return tensor.NewShapeError(op.String(), fmt.Sprintf("operand %d is nil", i))
		case tensor.Matrix:
			if err := x.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// result returns a nil Value when err is set.
func result[T tensor.Value](v T, err error) (tensor.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
