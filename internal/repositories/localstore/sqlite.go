package localstore

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteRepository implements Repository on a *sql.DB opened with the
// sqlite driver. Missing keys are reported as (nil, nil).
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Init creates the backing table. Safe to call on every startup.
func (r *SQLiteRepository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS localstore (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to init localstore: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM localstore WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get localstore[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO localstore (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set localstore[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM localstore WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete localstore[%s]: %w", key, err)
	}
	return nil
}
