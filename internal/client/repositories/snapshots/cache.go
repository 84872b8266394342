package snapshots

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/dbx"
)

// Cache is the store-facing side of the snapshot table. A save never
// replaces a snapshot fetched later than itself.
type Cache struct {
	db *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// Save stores value under key unless a newer snapshot is already present.
// It reports whether the row was written.
func (c *Cache) Save(ctx context.Context, key string, value []byte, fetchedAt time.Time) (bool, error) {
	written := false
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := c.repo(tx)
		cur, err := repo.Get(ctx, key)
		if err != nil {
			return err
		}
		if cur != nil && cur.FetchedAt.After(fetchedAt) {
			return nil
		}
		if err := repo.Set(ctx, Snapshot{Key: key, Value: value, FetchedAt: fetchedAt}); err != nil {
			return err
		}
		written = true
		return nil
	})
	return written, err
}

// Load returns the stored value and its fetch time; ok is false when absent.
func (c *Cache) Load(ctx context.Context, key string) (value []byte, fetchedAt time.Time, ok bool, err error) {
	s, err := c.repo(c.db).Get(ctx, key)
	if err != nil || s == nil {
		return nil, time.Time{}, false, err
	}
	return s.Value, s.FetchedAt, true, nil
}

// List returns every stored snapshot ordered by key.
func (c *Cache) List(ctx context.Context) ([]Snapshot, error) {
	return c.repo(c.db).List(ctx)
}

// Drop removes the snapshot stored under key, if any.
func (c *Cache) Drop(ctx context.Context, key string) error {
	return c.repo(c.db).Delete(ctx, key)
}

// Purge drops every snapshot.
func (c *Cache) Purge(ctx context.Context) error {
	return c.repo(c.db).Clear(ctx)
}
