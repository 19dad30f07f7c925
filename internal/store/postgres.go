package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A pool_max_conns parameter in connString overrides the default pool size.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if !strings.Contains(connString, "pool_max_conns") {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetSnapshot returns the persisted snapshot or ErrNotFound.
func (s *PostgresStore) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	err := s.pool.QueryRow(ctx, queryGetSnapshot).Scan(&snap.CapturedAt, &snap.KnownIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	if snap.KnownIDs == nil {
		snap.KnownIDs = []int64{}
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	return snap, nil
}

// PutSnapshot replaces the persisted snapshot.
func (s *PostgresStore) PutSnapshot(ctx context.Context, snap domain.Snapshot) error {
	ids := snap.KnownIDs
	if ids == nil {
		ids = []int64{}
	}

	_, err := s.pool.Exec(ctx, queryPutSnapshot, pgx.NamedArgs{
		"updated_at":  snap.CapturedAt.UTC(),
		"product_ids": ids,
	})
	if err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}
	return nil
}

// GetCursor returns the persisted cursor or ErrNotFound.
func (s *PostgresStore) GetCursor(ctx context.Context) (*domain.Cursor, error) {
	c := &domain.Cursor{}
	err := s.pool.QueryRow(ctx, queryGetCursor).Scan(&c.UpdatedAt, &c.LatestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}
	return c, nil
}

// PutCursor replaces the persisted cursor.
func (s *PostgresStore) PutCursor(ctx context.Context, c domain.Cursor) error {
	_, err := s.pool.Exec(ctx, queryPutCursor, pgx.NamedArgs{
		"updated_at":        c.UpdatedAt.UTC(),
		"latest_product_id": c.LatestID,
	})
	if err != nil {
		return fmt.Errorf("putting cursor: %w", err)
	}
	return nil
}

// PutRunLog writes a run log and its entries in one transaction. Writing
// the same key twice replaces the earlier log.
func (s *PostgresStore) PutRunLog(ctx context.Context, l domain.RunLog) error {
	key := runLogKey(&l)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, queryUpsertRunLog, pgx.NamedArgs{
			"key":        key,
			"run_id":     l.RunID,
			"created_at": l.CreatedAt.UTC(),
		}); err != nil {
			return fmt.Errorf("upserting run log: %w", err)
		}

		if _, err := tx.Exec(ctx, queryDeleteRunLogEntries, key); err != nil {
			return fmt.Errorf("clearing run log entries: %w", err)
		}

		rows := make([][]any, 0, len(l.Entries))
		for i, e := range l.Entries {
			rows = append(rows, []any{key, i, e.ItemID, e.NotificationID, e.Error})
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"run_log_entries"},
			runLogEntryColumns,
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copying run log entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("putting run log %s: %w", key, err)
	}
	return nil
}

// GetRunLog returns a run log by key or ErrNotFound.
func (s *PostgresStore) GetRunLog(ctx context.Context, key string) (*domain.RunLog, error) {
	l := domain.RunLog{}
	err := s.pool.QueryRow(ctx, queryGetRunLog, key).Scan(&l.Key, &l.RunID, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting run log %s: %w", key, err)
	}

	logs := []domain.RunLog{l}
	if err := s.attachEntries(ctx, logs); err != nil {
		return nil, err
	}
	return &logs[0], nil
}

// ListRunLogs returns up to limit run logs, newest first.
func (s *PostgresStore) ListRunLogs(ctx context.Context, limit int) ([]domain.RunLog, error) {
	rows, err := s.pool.Query(ctx, queryListRunLogs, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing run logs: %w", err)
	}

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RunLog, error) {
		var l domain.RunLog
		err := row.Scan(&l.Key, &l.RunID, &l.CreatedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning run logs: %w", err)
	}

	if err := s.attachEntries(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *PostgresStore) attachEntries(ctx context.Context, logs []domain.RunLog) error {
	if len(logs) == 0 {
		return nil
	}

	keys := make([]string, len(logs))
	byKey := make(map[string]int, len(logs))
	for i := range logs {
		keys[i] = logs[i].Key
		byKey[logs[i].Key] = i
		logs[i].Entries = []domain.LogEntry{}
	}

	rows, err := s.pool.Query(ctx, queryRunLogEntries, keys)
	if err != nil {
		return fmt.Errorf("querying run log entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			e   domain.LogEntry
		)
		if err := rows.Scan(&key, &e.ItemID, &e.NotificationID, &e.Error); err != nil {
			return fmt.Errorf("scanning run log entry: %w", err)
		}
		idx := byKey[key]
		logs[idx].Entries = append(logs[idx].Entries, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating run log entries: %w", err)
	}

	for i := range logs {
		if err := logs[i].Validate(); err != nil {
			return fmt.Errorf("run log %s: %w", logs[i].Key, err)
		}
	}
	return nil
}
