package engine

import "errors"

// Sentinel errors for every failure the engine can produce. Callers classify
// with errors.Is instead of matching message text.
var (
	ErrDivisionByZero      = errors.New("division by zero is undefined")
	ErrNegativeSqrt        = errors.New("square root of a negative number is undefined")
	ErrLogDomain           = errors.New("logarithm is undefined for zero or negative values")
	ErrUndefinedTangent    = errors.New("tangent is undefined at this angle")
	ErrFactorialDomain     = errors.New("factorial requires a non-negative integer")
	ErrFactorialOverflow   = errors.New("factorial argument exceeds 170")
	ErrNonFiniteResult     = errors.New("result is not a finite number")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrUnsafeExpression    = errors.New("expression contains disallowed content")
	ErrUnbalancedParens    = errors.New("unbalanced parentheses")
	ErrEmptyParens         = errors.New("empty parentheses")
	ErrEmptyExpression     = errors.New("expression is empty")
	ErrUnknownOperator     = errors.New("unknown operator")
	ErrUnknownOperation    = errors.New("unknown operation")
)
