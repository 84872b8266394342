package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns (nil, nil) when key has no snapshot.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Snapshot, error) {
	var (
		value []byte
		ts    int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, fetched_at FROM snapshots WHERE key = ?`, key).Scan(&value, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot[%s]: %w", key, err)
	}
	return &Snapshot{Key: key, Value: value, FetchedAt: time.Unix(0, ts)}, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, s Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at
	`, s.Key, s.Value, s.FetchedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to set snapshot[%s]: %w", s.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`)
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, fetched_at FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		var (
			s  Snapshot
			ts int64
		)
		if err := rows.Scan(&s.Key, &s.Value, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		s.FetchedAt = time.Unix(0, ts)
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return result, nil
}
