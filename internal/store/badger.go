package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// BadgerStore implements Store on an embedded Badger key-value database. It
// stores one JSON document per object key, with run logs under the logs/
// prefix.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// NewInMemoryBadgerStore opens a Badger database that never touches disk.
// State is lost on Close.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is open.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// GetSnapshot returns the persisted snapshot or ErrNotFound.
func (s *BadgerStore) GetSnapshot(_ context.Context) (*domain.Snapshot, error) {
	data, err := s.get(snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// PutSnapshot replaces the persisted snapshot.
func (s *BadgerStore) PutSnapshot(_ context.Context, snap domain.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.set(snapshotKey, data); err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}
	return nil
}

// GetCursor returns the persisted cursor or ErrNotFound.
func (s *BadgerStore) GetCursor(_ context.Context) (*domain.Cursor, error) {
	data, err := s.get(cursorKey)
	if err != nil {
		return nil, fmt.Errorf("getting cursor: %w", err)
	}
	return decodeCursor(data)
}

// PutCursor replaces the persisted cursor.
func (s *BadgerStore) PutCursor(_ context.Context, c domain.Cursor) error {
	data, err := encodeCursor(c)
	if err != nil {
		return fmt.Errorf("encoding cursor: %w", err)
	}
	if err := s.set(cursorKey, data); err != nil {
		return fmt.Errorf("putting cursor: %w", err)
	}
	return nil
}

// PutRunLog writes a run log under its key.
func (s *BadgerStore) PutRunLog(_ context.Context, l domain.RunLog) error {
	key := runLogKey(&l)
	data, err := encodeRunLog(l)
	if err != nil {
		return fmt.Errorf("encoding run log %s: %w", key, err)
	}
	if err := s.set(key, data); err != nil {
		return fmt.Errorf("putting run log %s: %w", key, err)
	}
	return nil
}

// GetRunLog returns a run log by key or ErrNotFound.
func (s *BadgerStore) GetRunLog(_ context.Context, key string) (*domain.RunLog, error) {
	data, err := s.get(key)
	if err != nil {
		return nil, fmt.Errorf("getting run log %s: %w", key, err)
	}
	return decodeRunLog(key, data)
}

// ListRunLogs returns up to limit run logs, newest first. Keys embed the
// run minute, so reverse key order is reverse chronological order.
func (s *BadgerStore) ListRunLogs(_ context.Context, limit int) ([]domain.RunLog, error) {
	limit = listLimit(limit)
	logs := []domain.RunLog{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(logPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(logPrefix)
		// In reverse mode Seek finds the last key <= the seek key.
		seek := append([]byte(logPrefix), 0xff)

		for it.Seek(seek); it.ValidForPrefix(prefix) && len(logs) < limit; it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))

			data, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("reading run log %s: %w", key, err)
			}

			l, err := decodeRunLog(key, data)
			if err != nil {
				return err
			}
			logs = append(logs, *l)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing run logs: %w", err)
	}
	return logs, nil
}

func (s *BadgerStore) get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *BadgerStore) set(key string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
