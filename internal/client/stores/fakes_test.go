package stores

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

var errBoom = errors.New("boom")

/*************
 * Fake goal API
 *************/

type fakeGoalAPI struct {
	mu    sync.Mutex
	calls []string

	goals    []models.Goal
	stats    *models.GoalStatistics
	listErr  error
	deadline []models.UpcomingDeadline

	createResp models.Goal
	updateResp models.Goal
	progResp   models.Goal
	getResp    models.Goal

	createErr, getErr, updateErr, deleteErr, progErr error
	deadlineErr, categoryErr, statsErr               error

	lastProgress models.ProgressUpdate
	lastCategory models.GoalCategory

	// onList runs inside ListGoals, before it returns.
	onList func()
}

func (f *fakeGoalAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeGoalAPI) count(op string) int {
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

func (f *fakeGoalAPI) ListGoals(ctx context.Context) ([]models.Goal, *models.GoalStatistics, error) {
	f.record("list")
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	return append([]models.Goal(nil), f.goals...), f.stats, nil
}
func (f *fakeGoalAPI) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	f.record("create")
	return f.createResp, f.createErr
}
func (f *fakeGoalAPI) GetGoal(ctx context.Context, id models.ID) (models.Goal, error) {
	f.record("get")
	return f.getResp, f.getErr
}
func (f *fakeGoalAPI) UpdateGoal(ctx context.Context, id models.ID, g models.Goal) (models.Goal, error) {
	f.record("update")
	return f.updateResp, f.updateErr
}
func (f *fakeGoalAPI) DeleteGoal(ctx context.Context, id models.ID) error {
	f.record("delete")
	return f.deleteErr
}
func (f *fakeGoalAPI) UpdateGoalProgress(ctx context.Context, id models.ID, u models.ProgressUpdate) (models.Goal, error) {
	f.record("progress")
	f.lastProgress = u
	return f.progResp, f.progErr
}
func (f *fakeGoalAPI) UpcomingDeadlines(ctx context.Context) ([]models.UpcomingDeadline, error) {
	f.record("deadlines")
	return f.deadline, f.deadlineErr
}
func (f *fakeGoalAPI) GoalsByCategory(ctx context.Context, c models.GoalCategory) ([]models.Goal, error) {
	f.record("category")
	f.lastCategory = c
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	var out []models.Goal
	for _, g := range f.goals {
		if g.Category == c {
			out = append(out, g)
		}
	}
	return out, nil
}
func (f *fakeGoalAPI) GoalStatistics(ctx context.Context) (*models.GoalStatistics, error) {
	f.record("stats")
	return f.stats, f.statsErr
}

/*************
 * Fake journal API
 *************/

type fakeJournalAPI struct {
	mu    sync.Mutex
	calls []string

	entries []models.JournalEntry
	listErr error

	getResp    models.JournalEntry
	createResp models.JournalEntry
	updateResp models.JournalEntry

	getErr, createErr, updateErr, deleteErr error

	lastCreate   models.JournalEntry
	lastUpdate   models.JournalEntry
	lastUpdateID models.ID
}

func (f *fakeJournalAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeJournalAPI) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	f.record("list")
	return append([]models.JournalEntry(nil), f.entries...), f.listErr
}
func (f *fakeJournalAPI) GetEntry(ctx context.Context, id models.ID) (models.JournalEntry, error) {
	f.record("get")
	return f.getResp, f.getErr
}
func (f *fakeJournalAPI) CreateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	f.record("create")
	f.lastCreate = e
	return f.createResp, f.createErr
}
func (f *fakeJournalAPI) UpdateEntry(ctx context.Context, id models.ID, e models.JournalEntry) (models.JournalEntry, error) {
	f.record("update")
	f.lastUpdate = e
	f.lastUpdateID = id
	return f.updateResp, f.updateErr
}
func (f *fakeJournalAPI) DeleteEntry(ctx context.Context, id models.ID) error {
	f.record("delete")
	return f.deleteErr
}

/*************
 * Fake note API
 *************/

type fakeNoteAPI struct {
	mu    sync.Mutex
	calls []string

	notes   []models.Note
	listErr error

	createResp models.Note
	updateResp models.Note
	createErr  error
	updateErr  error
	deleteErr  error

	lastContent string
}

func (f *fakeNoteAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeNoteAPI) ListNotes(ctx context.Context) ([]models.Note, error) {
	f.record("list")
	return append([]models.Note(nil), f.notes...), f.listErr
}
func (f *fakeNoteAPI) CreateNote(ctx context.Context, content string) (models.Note, error) {
	f.record("create")
	f.lastContent = content
	return f.createResp, f.createErr
}
func (f *fakeNoteAPI) UpdateNote(ctx context.Context, id models.ID, title, content string) (models.Note, error) {
	f.record("update")
	return f.updateResp, f.updateErr
}
func (f *fakeNoteAPI) DeleteNote(ctx context.Context, id models.ID) error {
	f.record("delete")
	return f.deleteErr
}

/*************
 * Fake snapshotter
 *************/

type memSnap struct {
	mu      sync.Mutex
	values  map[string][]byte
	at      map[string]time.Time
	saveErr error
	loadErr error
}

func newMemSnap() *memSnap {
	return &memSnap{values: map[string][]byte{}, at: map[string]time.Time{}}
}

func (m *memSnap) Save(ctx context.Context, key string, value []byte, fetchedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return false, m.saveErr
	}
	if cur, ok := m.at[key]; ok && cur.After(fetchedAt) {
		return false, nil
	}
	m.values[key] = append([]byte(nil), value...)
	m.at[key] = fetchedAt
	return true, nil
}

func (m *memSnap) Load(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, time.Time{}, false, m.loadErr
	}
	v, ok := m.values[key]
	return v, m.at[key], ok, nil
}

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}
