package coordinator

// Request is the closed set of calculation kinds. The marker method keeps the
// union sealed to this package's concrete types, so dispatch cannot silently
// fall through on an unexpected implementation.
type Request interface {
	kind() string
}

// BasicOp resolves the pending binary operation held in state: previous
// value, operator, and current value.
type BasicOp struct{}

func (BasicOp) kind() string { return "basic" }

// ScientificOp applies a named unary function to the current value. Power
// additionally requires an explicit exponent.
type ScientificOp struct {
	Operation string
	Exponent  *float64
}

func (ScientificOp) kind() string { return "scientific" }

// ExpressionEval evaluates a free-form arithmetic expression.
type ExpressionEval struct {
	Expression string
}

func (ExpressionEval) kind() string { return "expression" }

// MemoryAction enumerates the memory sub-operations.
type MemoryAction string

const (
	MemoryRecall   MemoryAction = "recall"
	MemoryStore    MemoryAction = "store"
	MemoryAdd      MemoryAction = "add"
	MemorySubtract MemoryAction = "subtract"
	MemoryClear    MemoryAction = "clear"
)

// MemoryOp performs a memory operation. Recall reads memory without mutating
// it; the remaining actions write the computed value back.
type MemoryOp struct {
	Action MemoryAction
}

func (MemoryOp) kind() string { return "memory" }

// mutatesMemory reports whether the action writes the computed value back to
// memory. Recall never does.
func (r MemoryOp) mutatesMemory() bool {
	return r.Action != MemoryRecall
}
