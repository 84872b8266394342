package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/config"
	"github.com/dmitrijs2005/lifedash/internal/client/finance"
	"github.com/dmitrijs2005/lifedash/internal/client/insights"
	"github.com/dmitrijs2005/lifedash/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/lifedash/internal/client/stores"
	"github.com/dmitrijs2005/lifedash/internal/filex"
	"github.com/dmitrijs2005/lifedash/internal/logging"
)

const dbFileName = "lifedash.db"

var snapshotKeys = []string{stores.SnapshotGoals, stores.SnapshotJournal, stores.SnapshotNotes}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	cache   *snapshots.Cache
	goals   *stores.GoalStore
	journal *stores.JournalStore
	notes   *stores.NoteStore
	ledger  *finance.Ledger
	filter  insights.JournalFilter
	reader  *bufio.Reader
	out     io.Writer
}

// apis groups the three backend surfaces; *client.HTTPClient serves all of them.
type apis struct {
	goals   client.GoalAPI
	journal client.JournalAPI
	notes   client.NoteAPI
}

// NewApp opens the snapshot cache under cfg.CacheDir and wires the stores to
// the REST client.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	return newApp(cfg, log, db, apis{goals: api, journal: api, notes: api}, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, log logging.Logger, db *sql.DB, api apis, in io.Reader, out io.Writer, extra ...stores.Option) *App {
	a := &App{
		config: cfg,
		log:    log,
		db:     db,
		ledger: finance.NewLedger(),
		reader: bufio.NewReader(in),
		out:    out,
	}

	opts := []stores.Option{stores.WithLogger(log)}
	if db != nil {
		a.cache = snapshots.NewCache(db)
		opts = append(opts, stores.WithSnapshots(a.cache))
	}
	opts = append(opts, extra...)
	a.goals = stores.NewGoalStore(api.goals, opts...)
	a.journal = stores.NewJournalStore(api.journal, opts...)
	a.notes = stores.NewNoteStore(api.notes, opts...)
	return a
}

// Run restores cached snapshots and blocks in the REPL until the user exits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.log = a.log.With("session", uuid.NewString())
	a.restore(ctx)
	a.log.Info(ctx, "session started", "api", a.config.APIBaseURL)

	fmt.Fprintln(a.out, "lifedash CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the snapshot database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) restore(ctx context.Context) {
	restored := 0
	for _, ok := range []bool{a.goals.Restore(ctx), a.journal.Restore(ctx), a.notes.Restore(ctx)} {
		if ok {
			restored++
		}
	}
	if restored > 0 {
		a.log.Info(ctx, "snapshots restored", "count", restored)
	}
}

func (a *App) status() string {
	if n := a.filter.ActiveCount(); n > 0 {
		return fmt.Sprintf(" (%d filters)", n)
	}
	return ""
}

func (a *App) askDefault(prompt, current string) (string, error) {
	return GetWithDefault(a.reader, prompt, current, a.out)
}

func (a *App) confirm(prompt string) (bool, error) {
	return Confirm(a.reader, prompt, a.out)
}

// Purge clears the local snapshot cache, or only the snapshot under key.
// In-memory state is kept.
func (a *App) Purge(ctx context.Context, key string) error {
	if a.cache == nil {
		fmt.Fprintln(a.out, "No snapshot cache configured")
		return nil
	}
	if key != "" {
		if !slices.Contains(snapshotKeys, key) {
			return fmt.Errorf("unknown snapshot %q, expected one of: %s", key, strings.Join(snapshotKeys, " "))
		}
		if err := a.cache.Drop(ctx, key); err != nil {
			return fmt.Errorf("purge snapshot %s: %w", key, err)
		}
		a.log.Info(ctx, "snapshot purged", "key", key)
		fmt.Fprintf(a.out, "Snapshot %s cleared\n", key)
		return nil
	}
	if err := a.cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge snapshots: %w", err)
	}
	a.log.Info(ctx, "snapshot cache purged")
	fmt.Fprintln(a.out, "Snapshot cache cleared")
	return nil
}

// Snapshots lists what the local cache holds.
func (a *App) Snapshots(ctx context.Context) error {
	if a.cache == nil {
		fmt.Fprintln(a.out, "No snapshot cache configured")
		return nil
	}
	list, err := a.cache.List(ctx)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	renderSnapshots(a.out, list)
	return nil
}
