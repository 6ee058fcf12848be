package state

import "time"

// Snapshot is the reduced projection of state used for undo/redo. It
// deliberately excludes history and formulas: those are never undone, which
// keeps the stacks memory-bounded and scopes undo to calculator operations.
type Snapshot struct {
	CurrentValue  string
	PreviousValue string
	Operator      string
	IsNewNumber   bool
	BracketCount  int
	Memory        float64
	IsDegree      bool
	Taken         time.Time
}

func takeSnapshot(s State) Snapshot {
	return Snapshot{
		CurrentValue:  s.CurrentValue,
		PreviousValue: s.PreviousValue,
		Operator:      s.Operator,
		IsNewNumber:   s.IsNewNumber,
		BracketCount:  s.BracketCount,
		Memory:        s.Memory,
		IsDegree:      s.IsDegree,
		Taken:         time.Now(),
	}
}

// patch expresses the snapshot as a full overwrite of the reduced fields.
func (sn Snapshot) patch() Patch {
	return Patch{
		CurrentValue:  Str(sn.CurrentValue),
		PreviousValue: Str(sn.PreviousValue),
		Operator:      Str(sn.Operator),
		IsNewNumber:   Flag(sn.IsNewNumber),
		BracketCount:  Count(sn.BracketCount),
		Memory:        Num(sn.Memory),
		IsDegree:      Flag(sn.IsDegree),
	}
}

// snapshotStack is a bounded LIFO stack: pushing onto a full stack evicts the
// oldest entry.
type snapshotStack struct {
	entries []Snapshot
	limit   int
}

func (st *snapshotStack) push(sn Snapshot) {
	if len(st.entries) >= st.limit {
		st.entries = st.entries[1:]
	}
	st.entries = append(st.entries, sn)
}

func (st *snapshotStack) pop() (Snapshot, bool) {
	if len(st.entries) == 0 {
		return Snapshot{}, false
	}
	sn := st.entries[len(st.entries)-1]
	st.entries = st.entries[:len(st.entries)-1]
	return sn, true
}

func (st *snapshotStack) clear() {
	st.entries = nil
}

func (st *snapshotStack) depth() int {
	return len(st.entries)
}
