package snapshots

import (
	"context"
	"time"
)

// Snapshot is one stored collection. Value is the JSON the store produced.
type Snapshot struct {
	Key       string
	Value     []byte
	FetchedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Set(ctx context.Context, s Snapshot) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Snapshot, error)
	Clear(ctx context.Context) error
}
