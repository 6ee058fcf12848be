// Package state owns the single source of calculator truth: the display
// value, pending operation, memory, history, and custom formulas, together
// with bounded undo/redo stacks and a keyed listener registry. All mutation
// goes through the Manager; reads return defensive copies.
package state

import (
	"slices"
	"time"
)

// DefaultValue is the initial display value. ErrorValue is the sentinel the
// display layer shows when a calculation fails.
const (
	DefaultValue = "0"
	ErrorValue   = "Error"
)

// Default caps for the history log and the undo/redo stacks. Oldest entries
// are evicted first when a cap is reached.
const (
	DefaultHistoryLimit = 50
	DefaultUndoLimit    = 50
)

// Formula is a user-defined named expression.
type Formula struct {
	Name       string    `json:"name"`
	Expression string    `json:"expression"`
	Variables  []string  `json:"variables"`
	Created    time.Time `json:"created"`
}

// State holds the complete calculator state. PreviousValue and Operator are
// empty strings when no binary operation is pending.
type State struct {
	CurrentValue    string
	PreviousValue   string
	Memory          float64
	Operator        string
	IsNewNumber     bool
	IsDegree        bool
	History         []string
	BracketCount    int
	LastCalculation string
	Formulas        []Formula
}

// Initial returns the default calculator state.
func Initial() State {
	return State{
		CurrentValue: DefaultValue,
		IsNewNumber:  true,
		IsDegree:     true,
	}
}

// clone returns a copy whose slices are detached from the receiver, so
// callers cannot reach back into live state.
func (s State) clone() State {
	out := s
	out.History = slices.Clone(s.History)
	out.Formulas = slices.Clone(s.Formulas)
	return out
}

// Patch is a partial state update. Nil fields are left untouched; non-nil
// fields overwrite (shallow merge, last write wins). History and formulas
// have dedicated Manager operations and are not patchable.
type Patch struct {
	CurrentValue    *string
	PreviousValue   *string
	Operator        *string
	Memory          *float64
	IsNewNumber     *bool
	IsDegree        *bool
	BracketCount    *int
	LastCalculation *string
}

// Str wraps a string for use in a Patch.
func Str(v string) *string { return &v }

// Num wraps a float64 for use in a Patch.
func Num(v float64) *float64 { return &v }

// Flag wraps a bool for use in a Patch.
func Flag(v bool) *bool { return &v }

// Count wraps an int for use in a Patch.
func Count(v int) *int { return &v }

func (s *State) apply(p Patch) {
	if p.CurrentValue != nil {
		s.CurrentValue = *p.CurrentValue
	}
	if p.PreviousValue != nil {
		s.PreviousValue = *p.PreviousValue
	}
	if p.Operator != nil {
		s.Operator = *p.Operator
	}
	if p.Memory != nil {
		s.Memory = *p.Memory
	}
	if p.IsNewNumber != nil {
		s.IsNewNumber = *p.IsNewNumber
	}
	if p.IsDegree != nil {
		s.IsDegree = *p.IsDegree
	}
	if p.BracketCount != nil {
		s.BracketCount = *p.BracketCount
	}
	if p.LastCalculation != nil {
		s.LastCalculation = *p.LastCalculation
	}
}
