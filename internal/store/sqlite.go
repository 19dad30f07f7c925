package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// Fixed-width layout so timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store backed by a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at path, creating its parent
// directory, and runs pending migrations.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between concurrent API and run writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetSnapshot returns the persisted snapshot or ErrNotFound.
func (s *SQLiteStore) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var updatedAt, rawIDs string
	err := s.db.QueryRowContext(ctx,
		`SELECT updated_at, product_ids FROM snapshots WHERE id = 1`,
	).Scan(&updatedAt, &rawIDs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	snap := &domain.Snapshot{}
	if snap.CapturedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	if snap.KnownIDs, err = decodeIDs(rawIDs); err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	return snap, nil
}

// PutSnapshot replaces the persisted snapshot.
func (s *SQLiteStore) PutSnapshot(ctx context.Context, snap domain.Snapshot) error {
	ids, err := encodeIDs(snap.KnownIDs)
	if err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, updated_at, product_ids) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at, product_ids = excluded.product_ids`,
		formatSQLiteTime(snap.CapturedAt), ids,
	)
	if err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}
	return nil
}

// GetCursor returns the persisted cursor or ErrNotFound.
func (s *SQLiteStore) GetCursor(ctx context.Context) (*domain.Cursor, error) {
	var updatedAt string
	c := &domain.Cursor{}
	err := s.db.QueryRowContext(ctx,
		`SELECT updated_at, latest_product_id FROM cursors WHERE id = 1`,
	).Scan(&updatedAt, &c.LatestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}

	if c.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}
	return c, nil
}

// PutCursor replaces the persisted cursor.
func (s *SQLiteStore) PutCursor(ctx context.Context, c domain.Cursor) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cursors (id, updated_at, latest_product_id) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at, latest_product_id = excluded.latest_product_id`,
		formatSQLiteTime(c.UpdatedAt), c.LatestID,
	)
	if err != nil {
		return fmt.Errorf("putting cursor: %w", err)
	}
	return nil
}

// PutRunLog writes a run log. Entries are stored as the JSON document the
// key-value backends use so every backend reads the same shape.
func (s *SQLiteStore) PutRunLog(ctx context.Context, l domain.RunLog) error {
	key := runLogKey(&l)

	entries := l.Entries
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	doc, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling run log %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO run_logs (key, run_id, created_at, entries) VALUES (?, ?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET run_id = excluded.run_id,
		   created_at = excluded.created_at, entries = excluded.entries`,
		key, l.RunID, formatSQLiteTime(l.CreatedAt), string(doc),
	)
	if err != nil {
		return fmt.Errorf("putting run log %s: %w", key, err)
	}
	return nil
}

// GetRunLog returns a run log by key or ErrNotFound.
func (s *SQLiteStore) GetRunLog(ctx context.Context, key string) (*domain.RunLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, run_id, created_at, entries FROM run_logs WHERE key = ?`, key,
	)
	l, err := scanSQLiteRunLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListRunLogs returns up to limit run logs, newest first.
func (s *SQLiteStore) ListRunLogs(ctx context.Context, limit int) ([]domain.RunLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, run_id, created_at, entries FROM run_logs
		 ORDER BY created_at DESC, key DESC LIMIT ?`, listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing run logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs := []domain.RunLog{}
	for rows.Next() {
		l, err := scanSQLiteRunLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run logs: %w", err)
	}
	return logs, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSQLiteRunLog(row scannable) (*domain.RunLog, error) {
	var (
		l                  domain.RunLog
		createdAt, entries string
	)
	if err := row.Scan(&l.Key, &l.RunID, &createdAt, &entries); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run log: %w", err)
	}

	var err error
	if l.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return nil, fmt.Errorf("run log %s: %w", l.Key, err)
	}
	if err := json.Unmarshal([]byte(entries), &l.Entries); err != nil {
		return nil, fmt.Errorf("run log %s: %w: %w", l.Key, domain.ErrInvalidState, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("run log %s: %w", l.Key, err)
	}
	return &l, nil
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %w", domain.ErrInvalidState, s, err)
	}
	return t, nil
}
