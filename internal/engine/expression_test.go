package engine

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluateExpression(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{name: "parenthesized", expr: "(2+3)*4", want: 20},
		{name: "precedence", expr: "2+3*4", want: 14},
		{name: "nested parens", expr: "((1+2)*(3+4))", want: 21},
		{name: "division", expr: "10/4", want: 2.5},
		{name: "whitespace", expr: " 1 + 2 ", want: 3},
		{name: "unary minus", expr: "-5+2", want: -3},
		{name: "sqrt function", expr: "sqrt(16)+1", want: 5},
		{name: "natural log", expr: "ln(1)", want: 0},
		{name: "base ten log", expr: "log(100)", want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvaluateExpression(tc.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestEvaluateExpressionRejections(t *testing.T) {
	tests := []struct {
		name string
		expr string
		err  error
	}{
		{name: "empty", expr: "   ", err: ErrEmptyExpression},
		{name: "unbalanced open", expr: "(1+2", err: ErrUnbalancedParens},
		{name: "unbalanced close", expr: "1+2)", err: ErrUnbalancedParens},
		{name: "empty parens", expr: "1+()", err: ErrEmptyParens},
		{name: "unknown identifier", expr: "os", err: ErrUnsafeExpression},
		{name: "code injection", expr: "require(1)", err: ErrUnsafeExpression},
		{name: "disallowed char", expr: "2^3", err: ErrUnsafeExpression},
		{name: "comment injection", expr: "1--2", err: ErrUnsafeExpression},
		{name: "trailing operator", expr: "1+", err: ErrMalformedExpression},
		{name: "division by zero", expr: "1/0", err: ErrNonFiniteResult},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := EvaluateExpression(tc.expr); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestAreParenthesesBalanced(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{expr: "(2+3)*4", want: true},
		{expr: "((1)(2))", want: true},
		{expr: "(1+2", want: false},
		{expr: ")(", want: false},
		{expr: "", want: true},
	}

	for _, tc := range tests {
		if got := AreParenthesesBalanced(tc.expr); got != tc.want {
			t.Fatalf("expr %q: expected %t, got %t", tc.expr, tc.want, got)
		}
	}
}
