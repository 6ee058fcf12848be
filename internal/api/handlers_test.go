package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"scicalc/internal/coordinator"
	"scicalc/internal/display"
	"scicalc/internal/observability"
	"scicalc/internal/state"
	"scicalc/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *state.Manager) {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := coordinator.InitMetrics(); err != nil {
		t.Fatalf("initializing coordinator metrics: %v", err)
	}

	mgr := state.NewManager(zap.NewNop())
	coord := coordinator.New(mgr, display.NewLogging(zap.NewNop()), zap.NewNop())
	return NewHandler(coord, mgr), mgr
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	return testutil.ExecuteRequest(req, handler)
}

func TestBasicEndpoint(t *testing.T) {
	h, mgr := newTestHandler(t)

	w := postJSON(t, h.Basic, "/calculator/basic", `{"a":5,"b":3,"operator":"+"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalculationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Error)
	}
	if resp.Result != "8" {
		t.Fatalf("expected result %q, got %q", "8", resp.Result)
	}
	if resp.CalculationID == "" {
		t.Fatal("expected calculation id in response")
	}
	if got := mgr.State().CurrentValue; got != "8" {
		t.Fatalf("expected state current value %q, got %q", "8", got)
	}
}

func TestBasicEndpointRejectsBadInput(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("malformed body", func(t *testing.T) {
		w := postJSON(t, h.Basic, "/calculator/basic", `not json`)
		testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing operator", func(t *testing.T) {
		w := postJSON(t, h.Basic, "/calculator/basic", `{"a":1,"b":2}`)
		testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	})
}

func TestBasicEndpointDivisionByZero(t *testing.T) {
	h, mgr := newTestHandler(t)

	w := postJSON(t, h.Basic, "/calculator/basic", `{"a":7,"b":0,"operator":"/"}`)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)

	var resp CalculationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Success {
		t.Fatal("expected failure response")
	}
	if resp.Error != "Cannot divide by zero" {
		t.Fatalf("expected user message, got %q", resp.Error)
	}
	if len(mgr.State().History) != 0 {
		t.Fatal("expected no history entry for failed calculation")
	}
}

func TestScientificEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Scientific, "/calculator/scientific", `{"operation":"sqrt","value":9}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalculationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if !resp.Success || resp.Result != "3" {
		t.Fatalf("expected sqrt(9)=3, got %+v", resp)
	}
}

func TestExpressionEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Expression, "/calculator/expression", `{"expression":"(2+3)*4"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalculationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if !resp.Success || resp.Result != "20" {
		t.Fatalf("expected 20, got %+v", resp)
	}
}

func TestMemoryAndUndoEndpoints(t *testing.T) {
	h, mgr := newTestHandler(t)

	// Stage a value, store it, then recall after clearing the display.
	w := postJSON(t, h.Scientific, "/calculator/scientific", `{"operation":"sqrt","value":16}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = postJSON(t, h.Memory, "/calculator/memory", `{"action":"store"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if got := mgr.State().Memory; got != 4 {
		t.Fatalf("expected memory 4, got %g", got)
	}

	w = postJSON(t, h.Undo, "/calculator/undo", `{}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var step StepResponse
	testutil.DecodeJSONBody(t, w.Body, &step)
	if !step.Applied {
		t.Fatal("expected undo to apply")
	}
}

func TestResetAndStateEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Expression, "/calculator/expression", `{"expression":"1+1"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = postJSON(t, h.Reset, "/calculator/reset", `{"preserve_memory":false,"preserve_history":false}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var view StateResponse
	testutil.DecodeJSONBody(t, w.Body, &view)
	if view.CurrentValue != state.DefaultValue {
		t.Fatalf("expected reset current value %q, got %q", state.DefaultValue, view.CurrentValue)
	}

	req := httptest.NewRequest(http.MethodGet, "/calculator/state", nil)
	w = testutil.ExecuteRequest(req, http.HandlerFunc(h.State))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	testutil.DecodeJSONBody(t, w.Body, &view)
	if view.CurrentValue != state.DefaultValue {
		t.Fatalf("expected state endpoint to report %q, got %q", state.DefaultValue, view.CurrentValue)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Expression, "/calculator/expression", `{"expression":"2*3"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/calculator/history", nil)
	w = testutil.ExecuteRequest(req, http.HandlerFunc(h.History))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var hist HistoryResponse
	testutil.DecodeJSONBody(t, w.Body, &hist)
	if len(hist.Entries) != 1 || hist.Entries[0] != "2*3 = 6" {
		t.Fatalf("expected history entry %q, got %#v", "2*3 = 6", hist.Entries)
	}
	if hist.Last != "2*3 = 6" {
		t.Fatalf("expected last %q, got %q", "2*3 = 6", hist.Last)
	}
}
