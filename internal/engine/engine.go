// Package engine implements the pure mathematical operations of the
// calculator: basic arithmetic, scientific functions, expression evaluation,
// and result formatting. It holds no state; every function is a plain
// computation over its arguments.
package engine

import (
	"fmt"
	"math"
)

// Factorial arguments above this exceed the float64 range.
const factorialMax = 170

// Add returns a + b.
func Add(a, b float64) float64 { return a + b }

// Subtract returns a - b.
func Subtract(a, b float64) float64 { return a - b }

// Multiply returns a * b.
func Multiply(a, b float64) float64 { return a * b }

// Divide returns a / b, rejecting a zero divisor instead of producing Inf.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
	}
	return finite(a / b)
}

// BasicOperation dispatches a binary operation by operator symbol.
func BasicOperation(a, b float64, operator string) (float64, error) {
	switch operator {
	case "+":
		return finite(Add(a, b))
	case "-":
		return finite(Subtract(a, b))
	case "*":
		return finite(Multiply(a, b))
	case "/":
		return Divide(a, b)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, operator)
	}
}

// Sqrt returns the square root of x.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("%w: %g", ErrNegativeSqrt, x)
	}
	return math.Sqrt(x), nil
}

// Ln returns the natural logarithm of x.
func Ln(x float64) (float64, error) {
	if x <= 0 {
		return 0, fmt.Errorf("%w: ln(%g)", ErrLogDomain, x)
	}
	return math.Log(x), nil
}

// Log10 returns the base-10 logarithm of x.
func Log10(x float64) (float64, error) {
	if x <= 0 {
		return 0, fmt.Errorf("%w: log(%g)", ErrLogDomain, x)
	}
	return math.Log10(x), nil
}

// Factorial returns x! for non-negative integer x up to 170.
func Factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, fmt.Errorf("%w: %g", ErrFactorialDomain, x)
	}
	if x > factorialMax {
		return 0, fmt.Errorf("%w: %g", ErrFactorialOverflow, x)
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}

// Power returns base raised to exp.
func Power(base, exp float64) (float64, error) {
	return finite(math.Pow(base, exp))
}

// Sin returns the sine of x, interpreting x as degrees when isDegree is set.
func Sin(x float64, isDegree bool) float64 {
	return math.Sin(toRadians(x, isDegree))
}

// Cos returns the cosine of x, interpreting x as degrees when isDegree is set.
func Cos(x float64, isDegree bool) float64 {
	return math.Cos(toRadians(x, isDegree))
}

// Tan returns the tangent of x, rejecting angles where it is undefined.
func Tan(x float64, isDegree bool) (float64, error) {
	rad := toRadians(x, isDegree)
	if math.Abs(math.Cos(rad)) < 1e-12 {
		return 0, fmt.Errorf("%w: tan(%g)", ErrUndefinedTangent, x)
	}
	return math.Tan(rad), nil
}

func toRadians(x float64, isDegree bool) float64 {
	if isDegree {
		return x * math.Pi / 180
	}
	return x
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFiniteResult
	}
	return v, nil
}
