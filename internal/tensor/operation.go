package tensor

// Operation identifies an arithmetic operation.
//
// The numeric values are the tag passed to native routines. Do not reorder.
type Operation int

// Supported operations.
const (
	OpAdd Operation = iota
	OpDivide
	OpMultiply
	OpSubtract
	OpExp
	OpTranspose
	OpProduct
	OpConcat
)

// IsElementwise reports whether op combines two operands element by element.
func (op Operation) IsElementwise() bool {
	switch op {
	case OpAdd, OpDivide, OpMultiply, OpSubtract:
		return true
	default:
		return false
	}
}

// IsUnary reports whether op takes a single operand.
func (op Operation) IsUnary() bool {
	return op == OpExp || op == OpTranspose
}

// String returns a human-readable name for the operation.
func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpDivide:
		return "divide"
	case OpMultiply:
		return "multiply"
	case OpSubtract:
		return "subtract"
	case OpExp:
		return "exp"
	case OpTranspose:
		return "transpose"
	case OpProduct:
		return "product"
	case OpConcat:
		return "concat"
	default:
		return "unknown"
	}
}

// ParseOperation returns the operation with the given name.
func ParseOperation(name string) (Operation, bool) {
	for op := OpAdd; op <= OpConcat; op++ {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}
