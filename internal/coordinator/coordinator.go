// Package coordinator routes calculation requests through validation,
// execution, result formatting, and state/display synchronization. It holds
// no calculation state of its own; everything lives in the state Manager.
package coordinator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc/internal/display"
	"scicalc/internal/engine"
	"scicalc/internal/state"
)

// tracer is the coordinator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("coordinator")

// Result is the outcome of one Execute call. On failure, Error carries the
// user-facing message and Value is empty.
type Result struct {
	Success       bool
	Value         string
	Error         string
	CalculationID string
	Duration      time.Duration
}

// Coordinator orchestrates calculations against a state Manager and a
// Display. It is not safe for concurrent use; callers serialize Execute.
type Coordinator struct {
	states  *state.Manager
	display display.Display
	logger  *zap.Logger
	records []Record
}

// New returns a Coordinator bound to the given collaborators.
func New(states *state.Manager, disp display.Display, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		states:  states,
		display: disp,
		logger:  logger,
	}
}

// calcContext is the per-call execution context: the request merged with a
// read of current state at the moment the calculation starts.
type calcContext struct {
	req      Request
	current  string
	previous string
	operator string
	memory   float64
	isDegree bool
	started  time.Time
}

// Execute runs one calculation end to end. Every failure is converted into a
// Result with Success=false and a user-facing message; no error escapes and
// no state is mutated on the failure path.
func (c *Coordinator) Execute(ctx context.Context, req Request) Result {
	id := uuid.New().String()
	started := time.Now()

	kind := "invalid"
	if req != nil {
		kind = req.kind()
	}
	ctx, span := tracer.Start(ctx, fmt.Sprintf("calc.%s", kind),
		trace.WithAttributes(
			attribute.String("calc.kind", kind),
			attribute.String("calc.id", id),
		),
	)
	defer span.End()

	if req == nil {
		return c.fail(ctx, span, id, kind, "", started, ErrNilRequest)
	}

	cc := calcContext{
		req:     req,
		started: started,
	}
	snapshot := c.states.State()
	cc.current = snapshot.CurrentValue
	cc.previous = snapshot.PreviousValue
	cc.operator = snapshot.Operator
	cc.memory = snapshot.Memory
	cc.isDegree = snapshot.IsDegree

	raw, err := c.perform(cc)
	if err != nil {
		return c.fail(ctx, span, id, kind, describeRequest(cc), started, err)
	}

	formatted := engine.FormatResult(raw)
	expression := describeResult(cc, formatted)

	c.apply(cc, raw, formatted)
	c.states.AddToHistory(expression)
	c.display.UpdateDisplay(formatted, display.Options{
		Animate:                true,
		AnnounceToScreenReader: true,
	})
	if m, ok := req.(MemoryOp); ok && m.mutatesMemory() {
		c.display.ShowToast(fmt.Sprintf("Memory %s", m.Action))
	}

	elapsed := time.Since(started)
	c.record(Record{
		ID:         id,
		Kind:       kind,
		Expression: expression,
		Result:     formatted,
		Success:    true,
		Duration:   elapsed,
		At:         started,
	})
	recordSuccessMetrics(ctx, kind, elapsed)

	span.SetAttributes(attribute.String("calc.result", formatted))
	span.SetStatus(codes.Ok, "")
	c.logger.Info("calculation completed",
		zap.String("calculation_id", id),
		zap.String("kind", kind),
		zap.String("expression", expression),
		zap.String("result", formatted),
		zap.Duration("duration", elapsed),
	)

	return Result{
		Success:       true,
		Value:         formatted,
		CalculationID: id,
		Duration:      elapsed,
	}
}

// perform dispatches by request kind and returns the raw numeric result.
func (c *Coordinator) perform(cc calcContext) (float64, error) {
	switch r := cc.req.(type) {
	case BasicOp:
		if cc.operator == "" || cc.previous == "" {
			return 0, ErrIncompleteOperation
		}
		a, err := parseOperand(cc.previous)
		if err != nil {
			return 0, err
		}
		b, err := parseOperand(cc.current)
		if err != nil {
			return 0, err
		}
		return engine.BasicOperation(a, b, cc.operator)

	case ScientificOp:
		x, err := parseOperand(cc.current)
		if err != nil {
			return 0, err
		}
		switch r.Operation {
		case "sqrt":
			return engine.Sqrt(x)
		case "ln":
			return engine.Ln(x)
		case "log":
			return engine.Log10(x)
		case "factorial":
			return engine.Factorial(x)
		case "power":
			if r.Exponent == nil {
				return 0, ErrMissingExponent
			}
			return engine.Power(x, *r.Exponent)
		case "sin":
			return engine.Sin(x, cc.isDegree), nil
		case "cos":
			return engine.Cos(x, cc.isDegree), nil
		case "tan":
			return engine.Tan(x, cc.isDegree)
		default:
			return 0, fmt.Errorf("%w: %q", engine.ErrUnknownOperation, r.Operation)
		}

	case ExpressionEval:
		return engine.EvaluateExpression(r.Expression)

	case MemoryOp:
		switch r.Action {
		case MemoryRecall:
			return cc.memory, nil
		case MemoryStore:
			return parseOperand(cc.current)
		case MemoryAdd:
			x, err := parseOperand(cc.current)
			if err != nil {
				return 0, err
			}
			return cc.memory + x, nil
		case MemorySubtract:
			x, err := parseOperand(cc.current)
			if err != nil {
				return 0, err
			}
			return cc.memory - x, nil
		case MemoryClear:
			return 0, nil
		default:
			return 0, fmt.Errorf("%w: %q", engine.ErrUnknownOperation, string(r.Action))
		}

	default:
		return 0, fmt.Errorf("%w: %T", ErrNilRequest, cc.req)
	}
}

// apply writes the calculation outcome back to state. Each completed
// calculation is one undoable step.
func (c *Coordinator) apply(cc calcContext, raw float64, formatted string) {
	p := state.Patch{
		CurrentValue: state.Str(formatted),
		IsNewNumber:  state.Flag(true),
	}
	switch r := cc.req.(type) {
	case BasicOp:
		p.PreviousValue = state.Str("")
		p.Operator = state.Str("")
	case MemoryOp:
		if r.mutatesMemory() {
			p.Memory = state.Num(raw)
		}
	}
	c.states.Update(p, true)
}

func (c *Coordinator) fail(ctx context.Context, span trace.Span, id, kind, expression string, started time.Time, err error) Result {
	msg := userMessage(err)
	elapsed := time.Since(started)

	c.display.ShowError(msg)
	c.record(Record{
		ID:         id,
		Kind:       kind,
		Expression: expression,
		Error:      msg,
		Success:    false,
		Duration:   elapsed,
		At:         started,
	})
	recordFailureMetrics(ctx, kind)

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.logger.Warn("calculation failed",
		zap.String("calculation_id", id),
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("user_message", msg),
	)

	return Result{
		Success:       false,
		Error:         msg,
		CalculationID: id,
		Duration:      elapsed,
	}
}

// describeResult builds the human-readable history entry for a completed
// calculation.
func describeResult(cc calcContext, formatted string) string {
	switch r := cc.req.(type) {
	case BasicOp:
		return fmt.Sprintf("%s %s %s = %s", cc.previous, cc.operator, cc.current, formatted)
	case ScientificOp:
		return fmt.Sprintf("%s(%s) = %s", r.Operation, cc.current, formatted)
	case ExpressionEval:
		return fmt.Sprintf("%s = %s", strings.TrimSpace(r.Expression), formatted)
	case MemoryOp:
		return fmt.Sprintf("M%s = %s", r.Action, formatted)
	default:
		return formatted
	}
}

// describeRequest summarizes the attempted calculation for diagnostics.
func describeRequest(cc calcContext) string {
	switch r := cc.req.(type) {
	case BasicOp:
		return fmt.Sprintf("%s %s %s", cc.previous, cc.operator, cc.current)
	case ScientificOp:
		return fmt.Sprintf("%s(%s)", r.Operation, cc.current)
	case ExpressionEval:
		return strings.TrimSpace(r.Expression)
	case MemoryOp:
		return fmt.Sprintf("M%s", r.Action)
	default:
		return ""
	}
}

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperand, s)
	}
	return v, nil
}

func recordSuccessMetrics(ctx context.Context, kind string, elapsed time.Duration) {
	if calcCounter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	calcCounter.Add(ctx, 1, attrs)
	calcHistogram.Record(ctx, float64(elapsed.Microseconds())/1000.0, attrs)
}

func recordFailureMetrics(ctx context.Context, kind string) {
	if errorCounter == nil {
		return
	}
	errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
