package snapshots

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE snapshots (
  key        TEXT PRIMARY KEY,
  value      BLOB    NOT NULL,
  fetched_at INTEGER NOT NULL
);`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Unix(1714550400, 123)

	require.NoError(t, r.Set(ctx, Snapshot{Key: "goals", Value: []byte(`[]`), FetchedAt: at}))

	s, err := r.Get(ctx, "goals")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []byte(`[]`), s.Value)
	assert.True(t, at.Equal(s.FetchedAt))
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	s, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, Snapshot{Key: "notes", Value: []byte("old"), FetchedAt: time.Unix(1, 0)}))
	require.NoError(t, r.Set(ctx, Snapshot{Key: "notes", Value: []byte("new"), FetchedAt: time.Unix(2, 0)}))

	s, err := r.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), s.Value)
}

func TestDeleteListClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"notes", "goals", "journal"} {
		require.NoError(t, r.Set(ctx, Snapshot{Key: k, Value: []byte(k), FetchedAt: time.Unix(1, 0)}))
	}
	require.NoError(t, r.Delete(ctx, "journal"))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "goals", all[0].Key)
	assert.Equal(t, "notes", all[1].Key)

	require.NoError(t, r.Clear(ctx))
	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_ErrorsWhenTableMissing(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err = r.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, r.Set(ctx, Snapshot{Key: "k"}))
	require.Error(t, r.Delete(ctx, "k"))
	require.Error(t, r.Clear(ctx))
	_, err = r.List(ctx)
	require.Error(t, err)
}

func TestCache_SaveKeepsNewerSnapshot(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(schema)
	require.NoError(t, err)

	c := NewCache(db)
	ctx := context.Background()
	newer := time.Unix(200, 0)
	older := time.Unix(100, 0)

	written, err := c.Save(ctx, "goals", []byte(`["new"]`), newer)
	require.NoError(t, err)
	require.True(t, written)

	written, err = c.Save(ctx, "goals", []byte(`["old"]`), older)
	require.NoError(t, err)
	require.False(t, written)

	v, at, ok, err := c.Load(ctx, "goals")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["new"]`, string(v))
	assert.True(t, newer.Equal(at))

	_, _, ok, err = c.Load(ctx, "notes")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Purge(ctx))
	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCache_DropRemovesOneKey(t *testing.T) {
	c := NewCache(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"goals", "notes"} {
		_, err := c.Save(ctx, k, []byte(`[]`), time.Unix(100, 0))
		require.NoError(t, err)
	}

	require.NoError(t, c.Drop(ctx, "notes"))
	require.NoError(t, c.Drop(ctx, "missing"))

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "goals", list[0].Key)
}
