package result

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fmi-tools/fmucheck/fmi"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	seq    INTEGER NOT NULL,
	time   REAL NOT NULL,
	name   TEXT NOT NULL,
	value  REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS samples_run_time ON samples(run_id, time);
`

// SQLite stores samples as (run_id, seq, time, name, value) rows. All rows of
// a run are written in one transaction committed on Close, so several runs
// can share a database file.
type SQLite struct {
	db     *sql.DB
	tx     *sql.Tx
	insert *sql.Stmt
	reader fmi.OutputReader
	names  []string
	runID  string
	seq    int
}

// OpenSQLite opens (or creates) the database at path and registers the run.
func OpenSQLite(path, runID, model string, reader fmi.OutputReader) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO runs (run_id, model, started_at) VALUES (?, ?, ?)`,
		runID, model, time.Now().UTC().UnixMilli()); err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, fmt.Errorf("register run %s: %w", runID, err)
	}
	insert, err := tx.Prepare(`INSERT INTO samples (run_id, seq, time, name, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &SQLite{
		db:     db,
		tx:     tx,
		insert: insert,
		reader: reader,
		names:  reader.OutputNames(),
		runID:  runID,
	}, nil
}

func (s *SQLite) Write(t float64) error {
	if s.tx == nil {
		return fmt.Errorf("write to closed sqlite sink")
	}
	values, err := s.reader.Outputs()
	if err != nil {
		return fmt.Errorf("read outputs: %w", err)
	}
	if len(values) != len(s.names) {
		return fmt.Errorf("got %d output values, expected %d", len(values), len(s.names))
	}
	for i, v := range values {
		if _, err := s.insert.Exec(s.runID, s.seq, t, s.names[i], v); err != nil {
			return fmt.Errorf("insert sample %s at time %g: %w", s.names[i], t, err)
		}
	}
	s.seq++
	return nil
}

// Close commits the run and closes the database.
func (s *SQLite) Close() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	_ = s.insert.Close()
	if err := tx.Commit(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("commit run %s: %w", s.runID, err)
	}
	return s.db.Close()
}

// Abort rolls the run back and closes the database.
func (s *SQLite) Abort() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	_ = s.insert.Close()
	_ = tx.Rollback()
	return s.db.Close()
}
