package debugstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one upload remembered by the debug ledger.
type Record struct {
	ID        uint64
	Name      string
	Hash      string
	Path      string
	CreatedAt time.Time
}

// Store persists debug uploads in SQLite so sequential IDs survive across
// runs and repeated syncs keep assigning fresh identifiers.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the debug ledger inside dir and applies
// migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure debug directory: %w", err)
	}

	dbPath := filepath.Join(dir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the ledger database.
func (s *Store) Path() string { return s.path }

// Dir returns the debug directory containing the ledger.
func (s *Store) Dir() string { return filepath.Dir(s.path) }

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS uploads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    hash TEXT NOT NULL,
    path TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploads_name ON uploads(name);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// NextUpload records a new upload and returns its sequential identifier.
// IDs start at 1 in a fresh ledger. The on-disk path is filled in by
// RecordPath once the identifier is known.
func (s *Store) NextUpload(ctx context.Context, name, hash string) (uint64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (name, hash, path, created_at) VALUES (?, ?, '', ?)`,
		name, hash, now)
	if err != nil {
		return 0, fmt.Errorf("insert upload record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read upload id: %w", err)
	}
	return uint64(id), nil
}

// RecordPath stores where the uploaded bytes were written.
func (s *Store) RecordPath(ctx context.Context, id uint64, path string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE uploads SET path = ? WHERE id = ?`, path, id); err != nil {
		return fmt.Errorf("record upload path: %w", err)
	}
	return nil
}

// Lookup returns the most recent record for name.
func (s *Store) Lookup(ctx context.Context, name string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, hash, path, created_at FROM uploads WHERE name = ? ORDER BY id DESC LIMIT 1`,
		name)

	var rec Record
	var created string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Hash, &rec.Path, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup upload record: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse record timestamp: %w", err)
	}
	rec.CreatedAt = parsed
	return &rec, nil
}

// List returns every record in insertion order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, hash, path, created_at FROM uploads ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list upload records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var created string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Hash, &rec.Path, &created); err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse record timestamp: %w", err)
		}
		rec.CreatedAt = parsed
		records = append(records, rec)
	}
	return records, rows.Err()
}
