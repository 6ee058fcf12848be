// Package api exposes the calculator core over HTTP. The coordinator offers
// no mutual exclusion of its own, so the handler serializes calculation and
// state access behind a single mutex.
package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc/internal/coordinator"
	"scicalc/internal/handlers"
	"scicalc/internal/observability"
	"scicalc/internal/state"
)

// tracer is the API layer's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("api")

// Handler bundles the calculator endpoints.
type Handler struct {
	mu     sync.Mutex
	coord  *coordinator.Coordinator
	states *state.Manager
}

// NewHandler returns a Handler bound to the coordinator and state manager.
func NewHandler(coord *coordinator.Coordinator, states *state.Manager) *Handler {
	return &Handler{coord: coord, states: states}
}

// Basic handles POST /calculator/basic: stages both operands and the operator
// in state, then resolves them as one basic calculation.
func (h *Handler) Basic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "api.basic",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	var req BasicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, "basic", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		observability.RecordError(ctx, span, logger, "basic", "invalid numeric input",
			fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}
	if req.Operator == "" {
		observability.RecordError(ctx, span, logger, "basic", "operator is required",
			fmt.Errorf("empty operator"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calc.operand.a", req.A),
		attribute.Float64("calc.operand.b", req.B),
		attribute.String("calc.operator", req.Operator),
	)

	h.mu.Lock()
	h.states.Update(state.Patch{
		PreviousValue: state.Str(formatOperand(req.A)),
		Operator:      state.Str(req.Operator),
		CurrentValue:  state.Str(formatOperand(req.B)),
		IsNewNumber:   state.Flag(false),
	}, false)
	res := h.coord.Execute(ctx, coordinator.BasicOp{})
	h.mu.Unlock()

	h.respond(w, span, logger, "basic", res)
}

// Scientific handles POST /calculator/scientific.
func (h *Handler) Scientific(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "api.scientific",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	var req ScientificRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, "scientific", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		observability.RecordError(ctx, span, logger, "scientific", "invalid numeric input",
			fmt.Errorf("value=%g", req.Value), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.String("calc.operation", req.Operation))

	h.mu.Lock()
	patch := state.Patch{CurrentValue: state.Str(formatOperand(req.Value))}
	if req.IsDegree != nil {
		patch.IsDegree = req.IsDegree
	}
	h.states.Update(patch, false)
	res := h.coord.Execute(ctx, coordinator.ScientificOp{
		Operation: req.Operation,
		Exponent:  req.Exponent,
	})
	h.mu.Unlock()

	h.respond(w, span, logger, "scientific", res)
}

// Expression handles POST /calculator/expression.
func (h *Handler) Expression(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "api.expression",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	var req ExpressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, "expression", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	h.mu.Lock()
	res := h.coord.Execute(ctx, coordinator.ExpressionEval{Expression: req.Expression})
	h.mu.Unlock()

	h.respond(w, span, logger, "expression", res)
}

// Memory handles POST /calculator/memory.
func (h *Handler) Memory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "api.memory",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	var req MemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, "memory", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.String("calc.memory_action", req.Action))

	h.mu.Lock()
	res := h.coord.Execute(ctx, coordinator.MemoryOp{Action: coordinator.MemoryAction(req.Action)})
	h.mu.Unlock()

	h.respond(w, span, logger, "memory", res)
}

// Undo handles POST /calculator/undo.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "undo", func() bool { return h.states.Undo() })
}

// Redo handles POST /calculator/redo.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "redo", func() bool { return h.states.Redo() })
}

func (h *Handler) step(w http.ResponseWriter, r *http.Request, name string, apply func() bool) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	_, span := tracer.Start(ctx, "api."+name)
	defer span.End()

	h.mu.Lock()
	applied := apply()
	current := h.states.State().CurrentValue
	h.mu.Unlock()

	span.SetAttributes(attribute.Bool("calc.applied", applied))
	span.SetStatus(codes.Ok, "")
	logger.Info(name+" applied",
		zap.Bool("applied", applied),
		zap.String("current_value", current),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, StepResponse{
		Applied:      applied,
		CurrentValue: current,
	})
}

// Reset handles POST /calculator/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "api.reset")
	defer span.End()

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, "reset", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	h.mu.Lock()
	h.states.Reset(req.PreserveMemory, req.PreserveHistory)
	snapshot := h.states.State()
	h.mu.Unlock()

	span.SetStatus(codes.Ok, "")
	logger.Info("state reset",
		zap.Bool("preserve_memory", req.PreserveMemory),
		zap.Bool("preserve_history", req.PreserveHistory),
	)

	handlers.WriteJSON(w, http.StatusOK, stateView(snapshot))
}

// State handles GET /calculator/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snapshot := h.states.State()
	h.mu.Unlock()

	handlers.WriteJSON(w, http.StatusOK, stateView(snapshot))
}

// History handles GET /calculator/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snapshot := h.states.State()
	h.mu.Unlock()

	entries := snapshot.History
	if entries == nil {
		entries = []string{}
	}
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Last:    snapshot.LastCalculation,
	})
}

// Statistics handles GET /calculator/statistics.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	stats := h.states.Statistics()
	h.mu.Unlock()

	handlers.WriteJSON(w, http.StatusOK, stats)
}

// respond writes the calculation outcome. Calculation failures are expected
// outcomes: they come back as 422 with the user-facing message, not as 500s.
func (h *Handler) respond(w http.ResponseWriter, span trace.Span, logger *zap.Logger, opName string, res coordinator.Result) {
	body := CalculationResponse{
		Success:       res.Success,
		Result:        res.Value,
		Error:         res.Error,
		CalculationID: res.CalculationID,
		DurationMs:    float64(res.Duration.Microseconds()) / 1000.0,
	}

	if !res.Success {
		span.SetStatus(codes.Error, res.Error)
		logger.Warn("calculation rejected",
			zap.String("operation", opName),
			zap.String("reason", res.Error),
			zap.String("calculation_id", res.CalculationID),
		)
		handlers.WriteJSON(w, http.StatusUnprocessableEntity, body)
		return
	}

	span.SetAttributes(attribute.String("calc.result", res.Value))
	span.SetStatus(codes.Ok, "")
	logger.Info("calculation completed",
		zap.String("operation", opName),
		zap.String("result", res.Value),
		zap.String("calculation_id", res.CalculationID),
		zap.Float64("duration_ms", body.DurationMs),
	)
	handlers.WriteJSON(w, http.StatusOK, body)
}

func stateView(s state.State) StateResponse {
	return StateResponse{
		CurrentValue:    s.CurrentValue,
		PreviousValue:   s.PreviousValue,
		Operator:        s.Operator,
		Memory:          s.Memory,
		IsNewNumber:     s.IsNewNumber,
		IsDegree:        s.IsDegree,
		BracketCount:    s.BracketCount,
		LastCalculation: s.LastCalculation,
	}
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
