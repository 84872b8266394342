package client

import (
	"context"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// GoalAPI covers the enveloped /goals* endpoints.
type GoalAPI interface {
	ListGoals(ctx context.Context) ([]models.Goal, *models.GoalStatistics, error)
	CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error)
	GetGoal(ctx context.Context, id models.ID) (models.Goal, error)
	UpdateGoal(ctx context.Context, id models.ID, goal models.Goal) (models.Goal, error)
	DeleteGoal(ctx context.Context, id models.ID) error
	UpdateGoalProgress(ctx context.Context, id models.ID, update models.ProgressUpdate) (models.Goal, error)
	UpcomingDeadlines(ctx context.Context) ([]models.UpcomingDeadline, error)
	GoalsByCategory(ctx context.Context, category models.GoalCategory) ([]models.Goal, error)
	GoalStatistics(ctx context.Context) (*models.GoalStatistics, error)
}

// JournalAPI covers the bare /journals* endpoints.
type JournalAPI interface {
	ListEntries(ctx context.Context) ([]models.JournalEntry, error)
	GetEntry(ctx context.Context, id models.ID) (models.JournalEntry, error)
	CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
	UpdateEntry(ctx context.Context, id models.ID, entry models.JournalEntry) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id models.ID) error
}

// NoteAPI covers the bare /notes* endpoints.
type NoteAPI interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, content string) (models.Note, error)
	UpdateNote(ctx context.Context, id models.ID, title, content string) (models.Note, error)
	DeleteNote(ctx context.Context, id models.ID) error
}

var (
	_ GoalAPI    = (*HTTPClient)(nil)
	_ JournalAPI = (*HTTPClient)(nil)
	_ NoteAPI    = (*HTTPClient)(nil)
)
