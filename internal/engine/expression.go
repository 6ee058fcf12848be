package engine

import (
	"fmt"
	"math"
	"strings"

	lua "github.com/Shopify/go-lua"
)

// Expression evaluation is a sanitized-eval: the input is validated against a
// restricted arithmetic grammar (digits, + - * / ( ) . whitespace, and the
// function names below), then handed to a throwaway Lua state that has no
// libraries opened; only the whitelisted functions are registered as
// globals. Operator precedence and nested parentheses come from the Lua
// grammar itself.

// exprFunctions maps the permitted function names to their implementations.
var exprFunctions = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"ln":   math.Log,
	"log":  math.Log10,
}

// EvaluateExpression evaluates a restricted arithmetic expression.
// Trigonometric functions inside expressions operate in radians.
func EvaluateExpression(expression string) (float64, error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return 0, ErrEmptyExpression
	}
	if err := validateExpression(expr); err != nil {
		return 0, err
	}

	l := lua.NewState()
	for name, fn := range exprFunctions {
		registerUnary(l, name, fn)
	}

	if err := lua.DoString(l, "return "+expr); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedExpression, err)
	}

	v, ok := l.ToNumber(-1)
	if !ok {
		return 0, fmt.Errorf("%w: expression did not produce a number", ErrMalformedExpression)
	}
	return finite(v)
}

// AreParenthesesBalanced reports whether every open parenthesis in expr has a
// matching close parenthesis in the right order.
func AreParenthesesBalanced(expr string) bool {
	depth := 0
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func validateExpression(expr string) error {
	if !AreParenthesesBalanced(expr) {
		return ErrUnbalancedParens
	}

	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, expr)
	if strings.Contains(compact, "()") {
		return ErrEmptyParens
	}
	// "--" opens a Lua comment and would silently truncate the expression.
	if strings.Contains(compact, "--") {
		return fmt.Errorf("%w: %q", ErrUnsafeExpression, "--")
	}

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c >= '0' && c <= '9', c == '.', c == ' ', c == '\t',
			c == '+', c == '-', c == '*', c == '/', c == '(', c == ')':
			i++
		case isLetter(c):
			j := i
			for j < len(expr) && isLetter(expr[j]) {
				j++
			}
			name := expr[i:j]
			if _, ok := exprFunctions[name]; !ok {
				return fmt.Errorf("%w: %q", ErrUnsafeExpression, name)
			}
			i = j
		default:
			return fmt.Errorf("%w: %q", ErrUnsafeExpression, string(c))
		}
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func registerUnary(l *lua.State, name string, fn func(float64) float64) {
	l.Register(name, func(l *lua.State) int {
		x := lua.CheckNumber(l, 1)
		l.PushNumber(fn(x))
		return 1
	})
}
