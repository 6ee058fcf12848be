// Package storage persists reduced calculator snapshots to SQLite. It plugs
// into the state Manager as the "storage" listener; the write path is
// fire-and-forget with failures logged, never surfaced to the calculation.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"scicalc/internal/state"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	current_value  TEXT    NOT NULL,
	previous_value TEXT    NOT NULL,
	operator       TEXT    NOT NULL,
	memory         REAL    NOT NULL,
	is_degree      INTEGER NOT NULL,
	bracket_count  INTEGER NOT NULL,
	created_at     INTEGER NOT NULL
);`

// Persister writes calculator snapshots to a SQLite database.
type Persister struct {
	db     *sql.DB
	logger *zap.Logger
}

// Snapshot is one persisted state record.
type Snapshot struct {
	CurrentValue  string
	PreviousValue string
	Operator      string
	Memory        float64
	IsDegree      bool
	BracketCount  int
	CreatedAt     time.Time
}

// Open opens (or creates) the snapshot database at path.
func Open(path string, logger *zap.Logger) (*Persister, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &Persister{db: db, logger: logger}, nil
}

// Close closes the database handle.
func (p *Persister) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Listener returns a state listener that persists every state change.
func (p *Persister) Listener() state.Listener {
	return func(newState, _ state.State) {
		if err := p.save(newState); err != nil {
			p.logger.Error("persist snapshot", zap.Error(err))
		}
	}
}

func (p *Persister) save(s state.State) error {
	_, err := p.db.Exec(
		`INSERT INTO snapshots (
		   current_value, previous_value, operator,
		   memory, is_degree, bracket_count, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.CurrentValue,
		s.PreviousValue,
		s.Operator,
		s.Memory,
		boolToInt(s.IsDegree),
		s.BracketCount,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LoadLatest returns the most recent persisted snapshot, reporting false when
// the database is empty.
func (p *Persister) LoadLatest(ctx context.Context) (Snapshot, bool, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT current_value, previous_value, operator,
		        memory, is_degree, bracket_count, created_at
		 FROM snapshots ORDER BY id DESC LIMIT 1`)

	var (
		sn        Snapshot
		isDegree  int
		createdAt int64
	)
	err := row.Scan(
		&sn.CurrentValue,
		&sn.PreviousValue,
		&sn.Operator,
		&sn.Memory,
		&isDegree,
		&sn.BracketCount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load latest snapshot: %w", err)
	}

	sn.IsDegree = isDegree != 0
	sn.CreatedAt = time.UnixMilli(createdAt).UTC()
	return sn, true, nil
}

// Restore applies a persisted snapshot back onto the manager.
func Restore(mgr *state.Manager, sn Snapshot) {
	mgr.Update(state.Patch{
		CurrentValue:  state.Str(sn.CurrentValue),
		PreviousValue: state.Str(sn.PreviousValue),
		Operator:      state.Str(sn.Operator),
		Memory:        state.Num(sn.Memory),
		IsDegree:      state.Flag(sn.IsDegree),
		BracketCount:  state.Count(sn.BracketCount),
	}, false)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
