package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/config"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
	"github.com/dmitrijs2005/lifedash/internal/client/stores"
	"github.com/dmitrijs2005/lifedash/internal/logging"
)

var errBoom = errors.New("boom")

/*************
 * Fake backend APIs
 *************/

type fakeAPI struct {
	mu sync.Mutex

	goals     []models.Goal
	stats     *models.GoalStatistics
	deadlines []models.UpcomingDeadline
	entries   []models.JournalEntry
	notes     []models.Note

	fail   map[string]error
	calls  []string
	nextID int

	lastGoal     models.Goal
	lastEntry    models.JournalEntry
	lastProgress models.ProgressUpdate
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{fail: map[string]error{}, nextID: 100}
}

func (f *fakeAPI) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) newID() models.ID {
	f.nextID++
	return models.ID(strconv.Itoa(f.nextID))
}

func (f *fakeAPI) ListGoals(ctx context.Context) ([]models.Goal, *models.GoalStatistics, error) {
	if err := f.enter("list_goals"); err != nil {
		return nil, nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.goals), f.stats, nil
}

func (f *fakeAPI) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	if err := f.enter("create_goal"); err != nil {
		return models.Goal{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGoal = g
	g.ID = f.newID()
	f.goals = append(f.goals, g)
	return g, nil
}

func (f *fakeAPI) GetGoal(ctx context.Context, id models.ID) (models.Goal, error) {
	if err := f.enter("get_goal"); err != nil {
		return models.Goal{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, &client.APIError{Status: 404, Message: "Goal not found"}
}

func (f *fakeAPI) UpdateGoal(ctx context.Context, id models.ID, g models.Goal) (models.Goal, error) {
	if err := f.enter("update_goal"); err != nil {
		return models.Goal{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGoal = g
	g.ID = id
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals[i] = g
		}
	}
	return g, nil
}

func (f *fakeAPI) DeleteGoal(ctx context.Context, id models.ID) error {
	if err := f.enter("delete_goal"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goals = slices.DeleteFunc(f.goals, func(g models.Goal) bool { return g.ID == id })
	return nil
}

func (f *fakeAPI) UpdateGoalProgress(ctx context.Context, id models.ID, u models.ProgressUpdate) (models.Goal, error) {
	if err := f.enter("progress"); err != nil {
		return models.Goal{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastProgress = u
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals[i].CurrentValue += u.Value
			return f.goals[i], nil
		}
	}
	return models.Goal{}, &client.APIError{Status: 404}
}

func (f *fakeAPI) UpcomingDeadlines(ctx context.Context) ([]models.UpcomingDeadline, error) {
	if err := f.enter("deadlines"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.deadlines), nil
}

func (f *fakeAPI) GoalsByCategory(ctx context.Context, c models.GoalCategory) ([]models.Goal, error) {
	if err := f.enter("by_category"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Goal
	for _, g := range f.goals {
		if g.Category == c {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeAPI) GoalStatistics(ctx context.Context) (*models.GoalStatistics, error) {
	if err := f.enter("stats"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, nil
}

func (f *fakeAPI) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	if err := f.enter("list_entries"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.entries), nil
}

func (f *fakeAPI) GetEntry(ctx context.Context, id models.ID) (models.JournalEntry, error) {
	if err := f.enter("get_entry"); err != nil {
		return models.JournalEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, &client.APIError{Status: 404}
}

func (f *fakeAPI) CreateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	if err := f.enter("create_entry"); err != nil {
		return models.JournalEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEntry = e
	e.ID = f.newID()
	f.entries = append([]models.JournalEntry{e}, f.entries...)
	return e, nil
}

func (f *fakeAPI) UpdateEntry(ctx context.Context, id models.ID, e models.JournalEntry) (models.JournalEntry, error) {
	if err := f.enter("update_entry"); err != nil {
		return models.JournalEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEntry = e
	e.ID = id
	return e, nil
}

func (f *fakeAPI) DeleteEntry(ctx context.Context, id models.ID) error {
	return f.enter("delete_entry")
}

func (f *fakeAPI) ListNotes(ctx context.Context) ([]models.Note, error) {
	if err := f.enter("list_notes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.notes), nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, content string) (models.Note, error) {
	if err := f.enter("create_note"); err != nil {
		return models.Note{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := models.Note{ID: f.newID(), Content: content}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeAPI) UpdateNote(ctx context.Context, id models.ID, title, content string) (models.Note, error) {
	if err := f.enter("update_note"); err != nil {
		return models.Note{}, err
	}
	return models.Note{ID: id, Title: models.StringPtr(title), Content: content}, nil
}

func (f *fakeAPI) DeleteNote(ctx context.Context, id models.ID) error {
	return f.enter("delete_note")
}

/*************
 * Test app
 *************/

var june15 = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

// newTestApp wires an App to api with scripted stdin and an SQLite snapshot
// cache in a temp dir.
func newTestApp(t *testing.T, api *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), dbFileName))
	require.NoError(t, err)

	var out bytes.Buffer
	cfg := &config.Config{APIBaseURL: "http://backend.test/api"}
	a := newApp(cfg, logging.Nop(), db, apis{goals: api, journal: api, notes: api}, bytes.NewBufferString(input), &out,
		stores.WithClock(func() time.Time { return june15 }))
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}
