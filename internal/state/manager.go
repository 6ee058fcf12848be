package state

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

// Listener observes state changes. It receives the state after the change and
// the state immediately before it. Listeners run synchronously on the
// mutating call; a listener must not call back into the Manager.
type Listener func(newState, previous State)

// Manager owns the calculator state. It is not safe for concurrent use;
// callers serialize access.
type Manager struct {
	logger       *zap.Logger
	state        State
	undo         snapshotStack
	redo         snapshotStack
	historyLimit int
	listeners    map[string]Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithHistoryLimit overrides the history cap.
func WithHistoryLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.historyLimit = n
		}
	}
}

// WithUndoLimit overrides the undo/redo stack cap.
func WithUndoLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.undo.limit = n
			m.redo.limit = n
		}
	}
}

// NewManager returns a Manager holding the initial calculator state.
func NewManager(logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		logger:       logger,
		state:        Initial(),
		undo:         snapshotStack{limit: DefaultUndoLimit},
		redo:         snapshotStack{limit: DefaultUndoLimit},
		historyLimit: DefaultHistoryLimit,
		listeners:    make(map[string]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current state. The copy is detached: mutating
// it (or its slices) has no effect on the Manager.
func (m *Manager) State() State {
	return m.state.clone()
}

// Update merges the patch into the current state. When saveForUndo is set, a
// snapshot of the pre-merge state is pushed onto the undo stack and the redo
// stack is cleared before the merge applies. Listeners are notified after the
// merge with the new and previous states.
func (m *Manager) Update(p Patch, saveForUndo bool) {
	previous := m.state.clone()
	if saveForUndo {
		m.undo.push(takeSnapshot(m.state))
		m.redo.clear()
	}
	m.state.apply(p)
	m.notify(m.state.clone(), previous)
}

// Reset replaces state with the initial defaults, optionally carrying memory
// and/or the history and formulas forward from the outgoing state. The undo
// and redo stacks are discarded. Listeners are notified with the fresh state
// and no previous-state detail.
func (m *Manager) Reset(preserveMemory, preserveHistory bool) {
	outgoing := m.state
	m.state = Initial()
	if preserveMemory {
		m.state.Memory = outgoing.Memory
	}
	if preserveHistory {
		m.state.History = slices.Clone(outgoing.History)
		m.state.Formulas = slices.Clone(outgoing.Formulas)
	}
	m.undo.clear()
	m.redo.clear()
	m.notify(m.state.clone(), State{})
}

// Undo restores the most recent undo snapshot, pushing the current reduced
// state onto the redo stack. It reports false when there is nothing to undo.
func (m *Manager) Undo() bool {
	sn, ok := m.undo.pop()
	if !ok {
		return false
	}
	m.redo.push(takeSnapshot(m.state))
	m.Update(sn.patch(), false)
	return true
}

// Redo is the inverse of Undo.
func (m *Manager) Redo() bool {
	sn, ok := m.redo.pop()
	if !ok {
		return false
	}
	m.undo.push(takeSnapshot(m.state))
	m.Update(sn.patch(), false)
	return true
}

// AddToHistory appends a human-readable calculation record, evicting the
// oldest entries beyond the cap, and updates LastCalculation.
func (m *Manager) AddToHistory(entry string) {
	previous := m.state.clone()
	m.state.History = append(m.state.History, entry)
	if excess := len(m.state.History) - m.historyLimit; excess > 0 {
		m.state.History = slices.Clone(m.state.History[excess:])
	}
	m.state.LastCalculation = entry
	m.notify(m.state.clone(), previous)
}

// AddFormula stores a named formula. Re-adding an existing name replaces it.
func (m *Manager) AddFormula(name, expression string, variables []string) {
	previous := m.state.clone()
	formula := Formula{
		Name:       name,
		Expression: expression,
		Variables:  slices.Clone(variables),
		Created:    time.Now(),
	}
	replaced := false
	for i, f := range m.state.Formulas {
		if f.Name == name {
			m.state.Formulas[i] = formula
			replaced = true
			break
		}
	}
	if !replaced {
		m.state.Formulas = append(m.state.Formulas, formula)
	}
	m.notify(m.state.clone(), previous)
}

// RemoveFormula deletes the named formula, reporting whether it existed.
func (m *Manager) RemoveFormula(name string) bool {
	for i, f := range m.state.Formulas {
		if f.Name == name {
			previous := m.state.clone()
			m.state.Formulas = append(m.state.Formulas[:i], m.state.Formulas[i+1:]...)
			m.notify(m.state.clone(), previous)
			return true
		}
	}
	return false
}

// AddListener registers a listener under key. Registering the same key again
// replaces the previous listener.
func (m *Manager) AddListener(key string, fn Listener) {
	if fn == nil {
		return
	}
	m.listeners[key] = fn
}

// RemoveListener deregisters the listener under key.
func (m *Manager) RemoveListener(key string) {
	delete(m.listeners, key)
}

// Statistics is a read-only view of state sizes for observability.
type Statistics struct {
	HistoryLength int     `json:"history_length"`
	UndoDepth     int     `json:"undo_depth"`
	RedoDepth     int     `json:"redo_depth"`
	Memory        float64 `json:"memory"`
	AngleMode     string  `json:"angle_mode"`
	FormulaCount  int     `json:"formula_count"`
}

// Statistics reports current counts and the angle-mode label.
func (m *Manager) Statistics() Statistics {
	mode := "RAD"
	if m.state.IsDegree {
		mode = "DEG"
	}
	return Statistics{
		HistoryLength: len(m.state.History),
		UndoDepth:     m.undo.depth(),
		RedoDepth:     m.redo.depth(),
		Memory:        m.state.Memory,
		AngleMode:     mode,
		FormulaCount:  len(m.state.Formulas),
	}
}

// notify invokes every registered listener, isolating panics so one failing
// listener cannot starve the others.
func (m *Manager) notify(newState, previous State) {
	for key, fn := range m.listeners {
		m.invoke(key, fn, newState, previous)
	}
}

func (m *Manager) invoke(key string, fn Listener, newState, previous State) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("state listener panicked",
				zap.String("listener", key),
				zap.Any("panic", r),
			)
		}
	}()
	fn(newState, previous)
}
