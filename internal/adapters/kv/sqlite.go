package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clawsandpaws/pawsd/pkg/metrics"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore implements Store on a single-table sqlite database, giving
// durability across process restarts. modernc.org/sqlite is pure Go, so the
// binary stays cgo-free.
type SQLiteStore struct {
	db *sqlx.DB
}

// Safe to run on every open.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	// sqlite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under overlapping UI-triggered calls.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the value for key and whether it was present.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	defer observe("get", time.Now())
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		metrics.RecordStoreOpError("get")
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, overwriting unconditionally.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	defer observe("set", time.Now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		metrics.RecordStoreOpError("set")
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs inside one transaction so readers observe either
// all of them or none.
func (s *SQLiteStore) SetMany(ctx context.Context, pairs map[string]string) error {
	defer observe("set_many", time.Now())
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		metrics.RecordStoreOpError("set_many")
		return fmt.Errorf("begin set_many: %w", err)
	}
	for k, v := range pairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			_ = tx.Rollback()
			metrics.RecordStoreOpError("set_many")
			return fmt.Errorf("set_many %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		metrics.RecordStoreOpError("set_many")
		return fmt.Errorf("commit set_many: %w", err)
	}
	return nil
}

// Remove deletes the named keys. Missing keys are not an error.
func (s *SQLiteStore) Remove(ctx context.Context, keys ...string) error {
	defer observe("remove", time.Now())
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
			metrics.RecordStoreOpError("remove")
			return fmt.Errorf("remove %s: %w", k, err)
		}
	}
	return nil
}

// Clear deletes every key.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	defer observe("clear", time.Now())
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		metrics.RecordStoreOpError("clear")
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
