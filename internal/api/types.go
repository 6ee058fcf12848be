package api

// BasicRequest is the JSON body for POST /calculator/basic.
type BasicRequest struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Operator string  `json:"operator"` // "+", "-", "*", "/"
}

// ScientificRequest is the JSON body for POST /calculator/scientific.
type ScientificRequest struct {
	Operation string   `json:"operation"` // sqrt, ln, log, factorial, power, sin, cos, tan
	Value     float64  `json:"value"`
	Exponent  *float64 `json:"exponent,omitempty"` // required for power
	IsDegree  *bool    `json:"is_degree,omitempty"`
}

// ExpressionRequest is the JSON body for POST /calculator/expression.
type ExpressionRequest struct {
	Expression string `json:"expression"`
}

// MemoryRequest is the JSON body for POST /calculator/memory.
type MemoryRequest struct {
	Action string `json:"action"` // recall, store, add, subtract, clear
}

// ResetRequest is the JSON body for POST /calculator/reset.
type ResetRequest struct {
	PreserveMemory  bool `json:"preserve_memory"`
	PreserveHistory bool `json:"preserve_history"`
}

// CalculationResponse is the JSON response for all calculation endpoints.
type CalculationResponse struct {
	Success       bool    `json:"success"`
	Result        string  `json:"result,omitempty"`
	Error         string  `json:"error,omitempty"`
	CalculationID string  `json:"calculation_id"`
	DurationMs    float64 `json:"duration_ms"`
}

// StepResponse is the JSON response for undo/redo.
type StepResponse struct {
	Applied      bool   `json:"applied"`
	CurrentValue string `json:"current_value"`
}

// StateResponse is the JSON view of the calculator state.
type StateResponse struct {
	CurrentValue    string  `json:"current_value"`
	PreviousValue   string  `json:"previous_value"`
	Operator        string  `json:"operator"`
	Memory          float64 `json:"memory"`
	IsNewNumber     bool    `json:"is_new_number"`
	IsDegree        bool    `json:"is_degree"`
	BracketCount    int     `json:"bracket_count"`
	LastCalculation string  `json:"last_calculation"`
}

// HistoryResponse is the JSON view of the calculation history.
type HistoryResponse struct {
	Entries []string `json:"entries"`
	Last    string   `json:"last"`
}
