package coordinator

import "time"

// recordLimit caps the diagnostics log; oldest records are evicted first.
const recordLimit = 100

// Record is one diagnostic entry for an executed calculation. The log is
// internal bookkeeping, distinct from the user-facing history in state.
type Record struct {
	ID         string        `json:"id"`
	Kind       string        `json:"kind"`
	Expression string        `json:"expression"`
	Result     string        `json:"result"`
	Error      string        `json:"error,omitempty"`
	Success    bool          `json:"success"`
	Duration   time.Duration `json:"duration"`
	At         time.Time     `json:"at"`
}

func (c *Coordinator) record(r Record) {
	if len(c.records) >= recordLimit {
		c.records = c.records[1:]
	}
	c.records = append(c.records, r)
}

// Records returns a copy of the diagnostics log, oldest first.
func (c *Coordinator) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}
