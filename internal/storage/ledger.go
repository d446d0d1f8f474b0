package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// RunRecord is one completed evolution run's outcome, as persisted by
// the run ledger (spec.md's external-interfaces table doesn't mandate
// a specific store; SPEC_FULL.md's domain-stack wiring picks SQLite,
// following the teacher's leaderboard.Storage pattern).
type RunRecord struct {
	ID          int
	Label       string
	Seed        uint64
	Generations int
	BestFitness float64
	Signature   string // hex signature of the winning genome, for dedup/lookup
	DurationMS  int64
	RanAt       time.Time
}

// Ledger provides persistent storage for evolution run outcomes using
// SQLite, grounded on the teacher's leaderboard.Storage (same
// sql.Open/initSchema/Exec shape, generalized from deck-leaderboard
// rows to run records).
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (creating if necessary) the SQLite database at
// dbPath and ensures its schema exists.
func OpenLedger(dbPath string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: failed to initialize ledger schema: %w", err)
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		seed INTEGER NOT NULL,
		generations INTEGER NOT NULL,
		best_fitness REAL NOT NULL,
		signature TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		ran_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_best_fitness ON runs(best_fitness DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Record inserts one completed run's outcome, returning the assigned
// row id.
func (l *Ledger) Record(r RunRecord) (int, error) {
	result, err := l.db.Exec(`
		INSERT INTO runs (label, seed, generations, best_fitness, signature, duration_ms, ran_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Label, r.Seed, r.Generations, r.BestFitness, r.Signature, r.DurationMS, r.RanAt)
	if err != nil {
		return 0, fmt.Errorf("storage: failed to record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: failed to get insert id: %w", err)
	}
	return int(id), nil
}

// Best returns the n runs with the highest best_fitness, most-fit
// first.
func (l *Ledger) Best(n int) ([]RunRecord, error) {
	rows, err := l.db.Query(`
		SELECT id, label, seed, generations, best_fitness, signature, duration_ms, ran_at
		FROM runs ORDER BY best_fitness DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to query best runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Recent returns the n most recently recorded runs, newest first.
func (l *Ledger) Recent(n int) ([]RunRecord, error) {
	rows, err := l.db.Query(`
		SELECT id, label, seed, generations, best_fitness, signature, duration_ms, ran_at
		FROM runs ORDER BY ran_at DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to query recent runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Label, &r.Seed, &r.Generations, &r.BestFitness, &r.Signature, &r.DurationMS, &r.RanAt); err != nil {
			return nil, fmt.Errorf("storage: failed to scan run row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
