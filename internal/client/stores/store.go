package stores

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/logging"
)

// ErrValidation is returned for input rejected before any backend call.
var ErrValidation = common.ErrValidation

// Snapshot keys, one per store.
const (
	SnapshotGoals   = "goals"
	SnapshotJournal = "journal"
	SnapshotNotes   = "notes"
)

// Snapshotter persists the last full collection a store fetched. Save must
// not replace a snapshot newer than fetchedAt.
type Snapshotter interface {
	Save(ctx context.Context, key string, value []byte, fetchedAt time.Time) (bool, error)
	Load(ctx context.Context, key string) ([]byte, time.Time, bool, error)
}

type options struct {
	log   logging.Logger
	snaps Snapshotter
	now   func() time.Time
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSnapshots enables saving and restoring the store's collection.
func WithSnapshots(s Snapshotter) Option {
	return func(o *options) { o.snaps = s }
}

// WithClock replaces time.Now, used for snapshot stamps and the journal
// composer's calendar month.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(store string, opts []Option) options {
	o := options{log: logging.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With("store", store)
	return o
}

func (o options) saveSnapshot(ctx context.Context, key string, v any, fetchedAt time.Time) {
	if o.snaps == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		o.log.Warn(ctx, "snapshot encode failed", "key", key, "error", err)
		return
	}
	if _, err := o.snaps.Save(ctx, key, b, fetchedAt); err != nil {
		o.log.Warn(ctx, "snapshot save failed", "key", key, "error", err)
	}
}

// loadSnapshot decodes the snapshot under key into dst. ok is false when
// there is nothing usable.
func (o options) loadSnapshot(ctx context.Context, key string, dst any) (fetchedAt time.Time, ok bool) {
	if o.snaps == nil {
		return time.Time{}, false
	}
	b, at, found, err := o.snaps.Load(ctx, key)
	if err != nil {
		o.log.Warn(ctx, "snapshot load failed", "key", key, "error", err)
		return time.Time{}, false
	}
	if !found {
		return time.Time{}, false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		o.log.Warn(ctx, "snapshot decode failed", "key", key, "error", err)
		return time.Time{}, false
	}
	return at, true
}
