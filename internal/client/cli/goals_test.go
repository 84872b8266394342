package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/forms"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func readGoal() models.Goal {
	return models.Goal{
		ID: "1", Title: "Read", Category: models.CategoryEducation, Type: models.GoalTypeManual,
		TargetValue: 12, CurrentValue: 4, StartDate: "2024-01-01", EndDate: "2024-12-31",
		Status: models.GoalStatusOngoing,
	}
}

func TestApp_AddGoal(t *testing.T) {
	api := newFakeAPI()
	a, out := newTestApp(t, api, lines(
		"Run 100km", "Health", "", "", "km", "100", "", "2024-01-01", "2024-12-31", "Weekly", "true",
	))

	require.NoError(t, a.AddGoal(context.Background()))

	g := api.lastGoal
	assert.Equal(t, "Run 100km", g.Title)
	assert.Equal(t, models.CategoryHealth, g.Category)
	assert.Equal(t, models.GoalTypeAutomatic, g.Type)
	assert.Nil(t, g.Description)
	assert.Equal(t, "km", models.Deref(g.Metric))
	assert.Equal(t, 100.0, g.TargetValue)
	assert.Equal(t, "Weekly", models.Deref(g.Frequency))
	assert.True(t, g.RemindersEnabled)

	assert.Equal(t, 1, api.count("list_goals"))
	assert.Contains(t, out.String(), "Goal 101 created")
	assert.Len(t, a.goals.State().Goals, 1)
}

func TestApp_AddGoalValidationDeclined(t *testing.T) {
	api := newFakeAPI()
	a, _ := newTestApp(t, api, lines(
		"", "Health", "", "", "", "0", "", "2024-01-01", "2023-12-31", "", "",
		"n",
	))

	err := a.AddGoal(context.Background())
	var fe forms.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, forms.MsgTitleRequired, fe[forms.FieldTitle])
	assert.Equal(t, forms.MsgTargetPositive, fe[forms.FieldTargetValue])
	assert.Equal(t, forms.MsgEndAfterStart, fe[forms.FieldEndDate])
	assert.Zero(t, api.count("create_goal"))
}

func TestApp_AddGoalRepromptsOnlyInvalidFields(t *testing.T) {
	api := newFakeAPI()
	a, out := newTestApp(t, api, lines(
		"", "Health", "", "", "", "0", "", "2024-01-01", "2023-12-31", "", "",
		"y",
		"Swim", "5", "2024-02-01",
	))

	require.NoError(t, a.AddGoal(context.Background()))
	assert.Equal(t, "Swim", api.lastGoal.Title)
	assert.Equal(t, 5.0, api.lastGoal.TargetValue)
	assert.Equal(t, "2024-02-01", api.lastGoal.EndDate)
	assert.Contains(t, out.String(), forms.MsgTitleRequired)
}

func TestApp_AddGoalServerFieldErrors(t *testing.T) {
	api := newFakeAPI()
	api.fail["create_goal"] = &client.APIError{Status: 422, FieldErrors: map[string]string{"title": "Title is taken"}}
	a, _ := newTestApp(t, api, lines(
		"Run", "Health", "", "", "", "10", "", "2024-01-01", "2024-12-31", "", "",
	))

	err := a.AddGoal(context.Background())
	var fe forms.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Title is taken", fe["title"])
	assert.Empty(t, a.goals.State().Error)
}

func TestApp_EditGoalKeepsComputedFields(t *testing.T) {
	api := newFakeAPI()
	api.goals = []models.Goal{readGoal()}
	a, out := newTestApp(t, api, lines("Read more", "", "", "", "", "", "", "", "", "", ""))

	require.NoError(t, a.EditGoal(context.Background(), "1"))

	g := api.lastGoal
	assert.Equal(t, "Read more", g.Title)
	assert.Equal(t, models.GoalTypeManual, g.Type)
	assert.Equal(t, 12.0, g.TargetValue)
	assert.Equal(t, 4.0, g.CurrentValue)
	assert.Equal(t, models.GoalStatusOngoing, g.Status)
	assert.Equal(t, 1, api.count("list_goals"))
	assert.Contains(t, out.String(), "Title [Read]")
}

func TestApp_ShowGoalNotFound(t *testing.T) {
	a, _ := newTestApp(t, newFakeAPI(), "")

	err := a.ShowGoal(context.Background(), "42")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Goal not found", err.Error())
	assert.Empty(t, a.goals.State().Error)
}

func TestApp_ShowGoalAndProgress(t *testing.T) {
	api := newFakeAPI()
	api.goals = []models.Goal{readGoal()}
	a, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, a.ShowGoal(ctx, "1"))
	assert.Contains(t, out.String(), "Read (#1)")
	assert.Contains(t, out.String(), "33%")

	require.NoError(t, a.Progress(ctx, "1", 2, "chapter"))
	assert.Equal(t, models.ProgressUpdate{Value: 2, Note: "chapter"}, api.lastProgress)
	assert.Contains(t, out.String(), "Read: 6 / 12")
	assert.Equal(t, 1, api.count("list_goals"))
}

func TestApp_DeleteGoalConfirms(t *testing.T) {
	api := newFakeAPI()
	api.goals = []models.Goal{readGoal()}
	a, _ := newTestApp(t, api, lines("n", "y"))
	ctx := context.Background()

	require.ErrorIs(t, a.DeleteGoal(ctx, "1"), errCancelled)
	assert.Zero(t, api.count("delete_goal"))

	require.NoError(t, a.DeleteGoal(ctx, "1"))
	assert.Equal(t, 1, api.count("delete_goal"))
	assert.Empty(t, api.goals)
}

func TestApp_ListGoals(t *testing.T) {
	api := newFakeAPI()
	api.goals = []models.Goal{readGoal(), {ID: "2", Title: "Jog", Category: models.CategoryHealth, TargetValue: 10}}
	a, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, a.ListGoals(ctx, ""))
	assert.Contains(t, out.String(), "Jog")
	assert.Equal(t, 1, api.count("list_goals"))

	out.Reset()
	require.NoError(t, a.ListGoals(ctx, "Health"))
	assert.Contains(t, out.String(), "Jog")
	assert.NotContains(t, out.String(), "Read")

	require.Error(t, a.ListGoals(ctx, "Hobbies"))
	assert.Equal(t, 1, api.count("by_category"))
}

func TestApp_ListGoalsFailureUsesStoreMessage(t *testing.T) {
	api := newFakeAPI()
	api.fail["list_goals"] = errBoom
	a, _ := newTestApp(t, api, "")

	err := a.ListGoals(context.Background(), "")
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, "Failed to fetch goals", err.Error())
	assert.Empty(t, a.goals.State().Error)
}

func TestApp_DeadlinesAndStats(t *testing.T) {
	api := newFakeAPI()
	api.deadlines = []models.UpcomingDeadline{
		{Goal: models.Goal{ID: "1", Title: "Soon"}, DaysRemaining: 3, ProgressPercentage: 50},
		{Goal: models.Goal{ID: "2", Title: "Late"}, DaysRemaining: -2},
	}
	api.stats = &models.GoalStatistics{TotalGoals: 2, CompletedGoals: 1, OngoingGoals: 1, OverallProgress: 75}
	a, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, a.Deadlines(ctx))
	assert.Contains(t, out.String(), "urgent")
	assert.Contains(t, out.String(), "2 days overdue")

	require.NoError(t, a.Stats(ctx))
	assert.Contains(t, out.String(), "Total: 2  Completed: 1  Ongoing: 1  Overall: 75%")
}
