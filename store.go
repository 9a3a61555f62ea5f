package vizboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout sorts lexically in time order, which PruneBefore relies on.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Pass is the record of one render pass.
type Pass struct {
	ID        int64
	StartedAt time.Time
	Dir       string
	Blocks    int
	Duration  time.Duration
	Error     string // empty on success
}

// Store wraps a SQLite database holding the render-pass history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the admin page read while a pass is being recorded.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS passes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    dir TEXT NOT NULL,
    blocks INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_passes_started_at ON passes(started_at);
`)
	return err
}

// RecordPass inserts p and returns its ID.
func (s *Store) RecordPass(p Pass) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO passes (started_at, dir, blocks, duration_ms, error) VALUES (?, ?, ?, ?, ?)`,
		p.StartedAt.UTC().Format(timeLayout), p.Dir, p.Blocks, p.Duration.Milliseconds(), p.Error)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPasses returns up to limit passes, most recent first.
func (s *Store) ListPasses(limit int) ([]Pass, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, started_at, dir, blocks, duration_ms, error FROM passes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		var p Pass
		var startedAt string
		var durationMS int64
		if err := rows.Scan(&p.ID, &startedAt, &p.Dir, &p.Blocks, &durationMS, &p.Error); err != nil {
			return nil, err
		}
		p.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("pass %d: parse started_at: %w", p.ID, err)
		}
		p.Duration = time.Duration(durationMS) * time.Millisecond
		passes = append(passes, p)
	}
	return passes, rows.Err()
}

// PruneBefore deletes passes that started before t and reports how many were removed.
func (s *Store) PruneBefore(t time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM passes WHERE started_at < ?`, t.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
