package coordinator

import (
	"errors"

	"scicalc/internal/engine"
)

// Validation errors raised before any computation runs.
var (
	ErrNilRequest          = errors.New("calculation request is required")
	ErrIncompleteOperation = errors.New("a previous value and operator are required")
	ErrInvalidOperand      = errors.New("operand is not a number")
	ErrMissingExponent     = errors.New("power requires an exponent")
)

// userMessage maps an engine or validation error to the message shown to the
// user. Classification is by typed sentinel, never by message text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrDivisionByZero):
		return "Cannot divide by zero"
	case errors.Is(err, engine.ErrNegativeSqrt):
		return "Cannot take the square root of a negative number"
	case errors.Is(err, engine.ErrLogDomain):
		return "Logarithm is undefined for this value"
	case errors.Is(err, engine.ErrUndefinedTangent):
		return "Tangent is undefined at this angle"
	case errors.Is(err, engine.ErrFactorialDomain):
		return "Factorial requires a non-negative whole number"
	case errors.Is(err, engine.ErrFactorialOverflow):
		return "Factorial argument is too large"
	case errors.Is(err, engine.ErrNonFiniteResult):
		return "Result is too large to display"
	case errors.Is(err, engine.ErrUnbalancedParens):
		return "Parentheses are not balanced"
	case errors.Is(err, engine.ErrEmptyParens):
		return "Empty parentheses are not allowed"
	case errors.Is(err, engine.ErrEmptyExpression):
		return "Expression is empty"
	case errors.Is(err, engine.ErrUnsafeExpression):
		return "Expression contains invalid characters"
	case errors.Is(err, engine.ErrMalformedExpression):
		return "Expression could not be evaluated"
	case errors.Is(err, engine.ErrUnknownOperator),
		errors.Is(err, engine.ErrUnknownOperation):
		return "Unknown operation"
	case errors.Is(err, ErrMissingExponent):
		return "Power requires an exponent"
	case errors.Is(err, ErrIncompleteOperation):
		return "Enter both operands and an operator first"
	case errors.Is(err, ErrInvalidOperand):
		return "Operand is not a valid number"
	case errors.Is(err, ErrNilRequest):
		return "Invalid calculation request"
	default:
		return err.Error()
	}
}
