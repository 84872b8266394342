package stores

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// Default error messages, used when the backend supplies none.
const (
	MsgFetchGoals         = "Failed to fetch goals"
	MsgCreateGoal         = "Failed to create goal"
	MsgFetchGoal          = "Failed to fetch goal"
	MsgUpdateGoal         = "Failed to update goal"
	MsgDeleteGoal         = "Failed to delete goal"
	MsgUpdateProgress     = "Failed to update progress"
	MsgFetchDeadlines     = "Failed to fetch deadlines"
	MsgFetchGoalsCategory = "Failed to fetch goals by category"
	MsgFetchStatistics    = "Failed to fetch statistics"
)

type GoalState struct {
	Goals             []models.Goal
	CurrentGoal       *models.Goal
	Statistics        *models.GoalStatistics
	UpcomingDeadlines []models.UpcomingDeadline
	Loading           bool
	Error             string
}

func (s GoalState) clone() GoalState {
	out := s
	out.Goals = cloneGoals(s.Goals)
	if s.CurrentGoal != nil {
		g := s.CurrentGoal.Clone()
		out.CurrentGoal = &g
	}
	if s.Statistics != nil {
		st := *s.Statistics
		out.Statistics = &st
	}
	out.UpcomingDeadlines = make([]models.UpcomingDeadline, len(s.UpcomingDeadlines))
	for i, d := range s.UpcomingDeadlines {
		d.Goal = d.Goal.Clone()
		out.UpcomingDeadlines[i] = d
	}
	return out
}

type goalSnapshot struct {
	Goals      []models.Goal          `json:"goals"`
	Statistics *models.GoalStatistics `json:"statistics"`
}

// GoalStore caches goals and their server-computed aggregates.
type GoalStore struct {
	api  client.GoalAPI
	opts options

	mu        sync.Mutex
	state     GoalState
	pending   int
	fetchedAt time.Time
}

func NewGoalStore(api client.GoalAPI, opts ...Option) *GoalStore {
	return &GoalStore{
		api:   api,
		opts:  buildOptions("goals", opts),
		state: GoalState{Goals: []models.Goal{}, UpcomingDeadlines: []models.UpcomingDeadline{}},
	}
}

// State returns a deep copy of the current state.
func (s *GoalStore) State() GoalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *GoalStore) begin() {
	s.mu.Lock()
	s.pending++
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
}

// finishLocked must be called with mu held.
func (s *GoalStore) finishLocked() {
	s.pending--
	s.state.Loading = s.pending > 0
}

func (s *GoalStore) fail(ctx context.Context, op string, err error, fallback string) {
	s.mu.Lock()
	s.state.Error = client.Message(err, fallback)
	s.finishLocked()
	s.mu.Unlock()
	s.opts.log.Warn(ctx, "goal action failed", "op", op, "error", err)
}

func (s *GoalStore) done() {
	s.mu.Lock()
	s.finishLocked()
	s.mu.Unlock()
}

// FetchGoals replaces the collection and statistics with the server's.
func (s *GoalStore) FetchGoals(ctx context.Context) ([]models.Goal, error) {
	s.begin()
	goals, stats, err := s.api.ListGoals(ctx)
	if err != nil {
		s.fail(ctx, "fetch_goals", err, MsgFetchGoals)
		return nil, err
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	at := s.opts.now()

	s.mu.Lock()
	s.state.Goals = cloneGoals(goals)
	s.state.Statistics = stats
	s.fetchedAt = at
	s.finishLocked()
	s.mu.Unlock()

	s.opts.saveSnapshot(ctx, SnapshotGoals, goalSnapshot{Goals: goals, Statistics: stats}, at)
	s.opts.log.Debug(ctx, "goals fetched", "count", len(goals))
	return goals, nil
}

// resync re-reads the collection after a mutation. The mutation's own pending
// count keeps Loading true throughout.
func (s *GoalStore) resync(ctx context.Context) error {
	_, err := s.FetchGoals(ctx)
	return err
}

// CreateGoal appends the created goal and resynchronises.
func (s *GoalStore) CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	s.begin()
	created, err := s.api.CreateGoal(ctx, goal)
	if err != nil {
		s.fail(ctx, "create_goal", err, MsgCreateGoal)
		return models.Goal{}, err
	}

	s.mu.Lock()
	s.state.Goals = append(s.state.Goals, created.Clone())
	s.mu.Unlock()

	defer s.done()
	return created, s.resync(ctx)
}

// FetchGoal loads one goal into CurrentGoal.
func (s *GoalStore) FetchGoal(ctx context.Context, id models.ID) (models.Goal, error) {
	s.begin()
	g, err := s.api.GetGoal(ctx, id)
	if err != nil {
		s.fail(ctx, "fetch_goal", err, MsgFetchGoal)
		return models.Goal{}, err
	}

	s.mu.Lock()
	c := g.Clone()
	s.state.CurrentGoal = &c
	s.finishLocked()
	s.mu.Unlock()
	return g, nil
}

// UpdateGoal replaces the goal in place, patches CurrentGoal when it is the
// same goal, and resynchronises.
func (s *GoalStore) UpdateGoal(ctx context.Context, id models.ID, goal models.Goal) (models.Goal, error) {
	s.begin()
	updated, err := s.api.UpdateGoal(ctx, id, goal)
	if err != nil {
		s.fail(ctx, "update_goal", err, MsgUpdateGoal)
		return models.Goal{}, err
	}

	s.mu.Lock()
	s.replaceLocked(id, updated)
	s.mu.Unlock()

	defer s.done()
	return updated, s.resync(ctx)
}

// DeleteGoal removes the goal, clears CurrentGoal when it matches, and
// resynchronises.
func (s *GoalStore) DeleteGoal(ctx context.Context, id models.ID) error {
	s.begin()
	if err := s.api.DeleteGoal(ctx, id); err != nil {
		s.fail(ctx, "delete_goal", err, MsgDeleteGoal)
		return err
	}

	s.mu.Lock()
	s.state.Goals = slices.DeleteFunc(s.state.Goals, func(g models.Goal) bool { return g.ID == id })
	if s.state.CurrentGoal != nil && s.state.CurrentGoal.ID == id {
		s.state.CurrentGoal = nil
	}
	s.mu.Unlock()

	defer s.done()
	return s.resync(ctx)
}

// UpdateProgress records progress against a goal, merges the returned goal
// and resynchronises.
func (s *GoalStore) UpdateProgress(ctx context.Context, id models.ID, update models.ProgressUpdate) (models.Goal, error) {
	s.begin()
	updated, err := s.api.UpdateGoalProgress(ctx, id, update)
	if err != nil {
		s.fail(ctx, "update_progress", err, MsgUpdateProgress)
		return models.Goal{}, err
	}

	s.mu.Lock()
	s.replaceLocked(id, updated)
	s.mu.Unlock()

	defer s.done()
	return updated, s.resync(ctx)
}

func (s *GoalStore) replaceLocked(id models.ID, g models.Goal) {
	if i := slices.IndexFunc(s.state.Goals, func(x models.Goal) bool { return x.ID == id }); i >= 0 {
		s.state.Goals[i] = g.Clone()
	}
	if s.state.CurrentGoal != nil && s.state.CurrentGoal.ID == id {
		c := g.Clone()
		s.state.CurrentGoal = &c
	}
}

func (s *GoalStore) FetchUpcomingDeadlines(ctx context.Context) ([]models.UpcomingDeadline, error) {
	s.begin()
	dl, err := s.api.UpcomingDeadlines(ctx)
	if err != nil {
		s.fail(ctx, "fetch_deadlines", err, MsgFetchDeadlines)
		return nil, err
	}
	if dl == nil {
		dl = []models.UpcomingDeadline{}
	}

	s.mu.Lock()
	s.state.UpcomingDeadlines = dl
	out := s.state.clone().UpcomingDeadlines
	s.finishLocked()
	s.mu.Unlock()
	return out, nil
}

// FetchGoalsByCategory replaces the collection with one category's goals.
// Statistics are left as they were.
func (s *GoalStore) FetchGoalsByCategory(ctx context.Context, category models.GoalCategory) ([]models.Goal, error) {
	s.begin()
	goals, err := s.api.GoalsByCategory(ctx, category)
	if err != nil {
		s.fail(ctx, "fetch_goals_by_category", err, MsgFetchGoalsCategory)
		return nil, err
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	s.mu.Lock()
	s.state.Goals = cloneGoals(goals)
	s.fetchedAt = s.opts.now()
	s.finishLocked()
	s.mu.Unlock()
	return goals, nil
}

func (s *GoalStore) FetchStatistics(ctx context.Context) (*models.GoalStatistics, error) {
	s.begin()
	stats, err := s.api.GoalStatistics(ctx)
	if err != nil {
		s.fail(ctx, "fetch_statistics", err, MsgFetchStatistics)
		return nil, err
	}

	s.mu.Lock()
	s.state.Statistics = stats
	s.finishLocked()
	s.mu.Unlock()
	return stats, nil
}

func (s *GoalStore) ClearCurrentGoal() {
	s.mu.Lock()
	s.state.CurrentGoal = nil
	s.mu.Unlock()
}

func (s *GoalStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// ResetStore returns the store to its initial empty state. In-flight calls
// still settle into the reset state when they return.
func (s *GoalStore) ResetStore() {
	s.mu.Lock()
	s.state = GoalState{
		Goals:             []models.Goal{},
		UpcomingDeadlines: []models.UpcomingDeadline{},
		Loading:           s.pending > 0,
	}
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// Restore loads the last goal snapshot unless a newer fetch already landed.
// It reports whether anything was applied.
func (s *GoalStore) Restore(ctx context.Context) bool {
	var snap goalSnapshot
	at, ok := s.opts.loadSnapshot(ctx, SnapshotGoals, &snap)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetchedAt.IsZero() && !at.After(s.fetchedAt) {
		return false
	}
	if snap.Goals == nil {
		snap.Goals = []models.Goal{}
	}
	s.state.Goals = snap.Goals
	s.state.Statistics = snap.Statistics
	s.fetchedAt = at
	return true
}

func cloneGoals(in []models.Goal) []models.Goal {
	out := make([]models.Goal, len(in))
	for i, g := range in {
		out[i] = g.Clone()
	}
	return out
}
