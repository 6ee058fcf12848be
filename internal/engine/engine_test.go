package engine

import (
	"errors"
	"math"
	"testing"
)

func TestBasicOperation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		operator string
		want     float64
	}{
		{name: "add", a: 5, b: 3, operator: "+", want: 8},
		{name: "subtract", a: 5, b: 3, operator: "-", want: 2},
		{name: "multiply", a: 5, b: 3, operator: "*", want: 15},
		{name: "divide", a: 10, b: 4, operator: "/", want: 2.5},
		{name: "negative operands", a: -2, b: -3, operator: "*", want: 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BasicOperation(tc.a, tc.b, tc.operator)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestBasicOperationUnknownOperator(t *testing.T) {
	_, err := BasicOperation(1, 2, "%")
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := Divide(7, 0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestSqrt(t *testing.T) {
	got, err := Sqrt(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %g", got)
	}

	if _, err := Sqrt(-1); !errors.Is(err, ErrNegativeSqrt) {
		t.Fatalf("expected ErrNegativeSqrt, got %v", err)
	}
}

func TestLogarithms(t *testing.T) {
	if got, err := Ln(math.E); err != nil || math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected ln(e)=1, got %g err %v", got, err)
	}
	if got, err := Log10(1000); err != nil || math.Abs(got-3) > 1e-12 {
		t.Fatalf("expected log(1000)=3, got %g err %v", got, err)
	}

	if _, err := Ln(0); !errors.Is(err, ErrLogDomain) {
		t.Fatalf("expected ErrLogDomain for ln(0), got %v", err)
	}
	if _, err := Log10(-5); !errors.Is(err, ErrLogDomain) {
		t.Fatalf("expected ErrLogDomain for log(-5), got %v", err)
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
		err  error
	}{
		{name: "zero", x: 0, want: 1},
		{name: "five", x: 5, want: 120},
		{name: "at cap", x: 170, want: 0},
		{name: "above cap", x: 171, err: ErrFactorialOverflow},
		{name: "negative", x: -3, err: ErrFactorialDomain},
		{name: "non-integer", x: 5.5, err: ErrFactorialDomain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Factorial(tc.x)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.name == "at cap" {
				if math.IsInf(got, 0) || got == 0 {
					t.Fatalf("expected finite non-zero 170!, got %g", got)
				}
				return
			}
			if got != tc.want {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestPowerOverflow(t *testing.T) {
	if _, err := Power(10, 10000); !errors.Is(err, ErrNonFiniteResult) {
		t.Fatalf("expected ErrNonFiniteResult, got %v", err)
	}

	got, err := Power(2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1024 {
		t.Fatalf("expected 1024, got %g", got)
	}
}

func TestTrigonometryDegrees(t *testing.T) {
	if got := Sin(30, true); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected sin(30°)=0.5, got %g", got)
	}
	if got := Cos(60, true); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected cos(60°)=0.5, got %g", got)
	}
	if got, err := Tan(45, true); err != nil || math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected tan(45°)=1, got %g err %v", got, err)
	}
}

func TestTanUndefined(t *testing.T) {
	if _, err := Tan(90, true); !errors.Is(err, ErrUndefinedTangent) {
		t.Fatalf("expected ErrUndefinedTangent for tan(90°), got %v", err)
	}
	if _, err := Tan(math.Pi/2, false); !errors.Is(err, ErrUndefinedTangent) {
		t.Fatalf("expected ErrUndefinedTangent for tan(π/2), got %v", err)
	}
}
