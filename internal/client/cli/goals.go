package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/forms"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

var errCancelled = errors.New("cancelled")

type formPrompt struct {
	field string
	label string
}

var goalPrompts = []formPrompt{
	{forms.FieldTitle, "Title"},
	{forms.FieldCategory, "Category (" + joinCategories() + ")"},
	{forms.FieldDescription, "Description"},
	{forms.FieldType, "Type (Automatic, Manual, Semi-Automatic)"},
	{forms.FieldMetric, "Metric"},
	{forms.FieldTargetValue, "Target value"},
	{forms.FieldStartValue, "Start value"},
	{forms.FieldStartDate, "Start date (YYYY-MM-DD)"},
	{forms.FieldEndDate, "End date (YYYY-MM-DD)"},
	{forms.FieldFrequency, "Frequency (" + strings.Join(models.Frequencies, ", ") + ")"},
	{forms.FieldRemindersEnabled, "Reminders (true/false)"},
}

func joinCategories() string {
	s := make([]string, len(models.GoalCategories))
	for i, c := range models.GoalCategories {
		s[i] = string(c)
	}
	return strings.Join(s, ", ")
}

func (a *App) goalFailed(err error) error {
	return transient(err, a.goals.State().Error, a.goals.ClearError)
}

func (a *App) ListGoals(ctx context.Context, category string) error {
	var (
		goals []models.Goal
		err   error
	)
	if category == "" {
		goals, err = a.goals.FetchGoals(ctx)
	} else {
		c := models.GoalCategory(category)
		if !slices.Contains(models.GoalCategories, c) {
			return fmt.Errorf("unknown category %q, expected one of: %s", category, joinCategories())
		}
		goals, err = a.goals.FetchGoalsByCategory(ctx, c)
	}
	if err != nil {
		return a.goalFailed(err)
	}
	renderGoals(a.out, goals)
	return nil
}

func (a *App) ShowGoal(ctx context.Context, id models.ID) error {
	g, err := a.goals.FetchGoal(ctx, id)
	if err != nil {
		return a.goalFailed(err)
	}
	renderGoal(a.out, g)
	return nil
}

// fillGoalForm prompts for every field, showing the form's current value as
// the default. It re-prompts only the fields that failed validation.
func (a *App) fillGoalForm(form *forms.GoalForm) error {
	prompts := goalPrompts
	for {
		for _, p := range prompts {
			if msg, ok := form.Errors[p.field]; ok {
				fmt.Fprintln(a.out, "  "+msg)
			}
			v, err := a.askDefault(p.label, form.Value(p.field))
			if err != nil {
				return err
			}
			if err := form.Set(p.field, v); err != nil {
				fmt.Fprintf(a.out, "  invalid value for %s\n", p.label)
			}
		}

		errs := form.Validate()
		if errs == nil {
			return nil
		}
		ok, err := a.confirm(fmt.Sprintf("%d field(s) need fixing. Try again?", len(errs)))
		if err != nil {
			return err
		}
		if !ok {
			return errs
		}
		prompts = slices.DeleteFunc(slices.Clone(goalPrompts), func(p formPrompt) bool {
			_, bad := errs[p.field]
			return !bad
		})
	}
}

// AddGoal runs the goal form and creates the goal. Field errors returned by
// the backend are shown against their fields.
func (a *App) AddGoal(ctx context.Context) error {
	form := forms.NewGoalForm()
	if err := a.fillGoalForm(form); err != nil {
		return err
	}
	payload, err := form.Payload()
	if err != nil {
		return err
	}
	created, err := a.goals.CreateGoal(ctx, payload)
	if err != nil {
		if form.ApplyServerErrors(err) {
			a.goals.ClearError()
			return form.Errors
		}
		if created.ID != "" {
			// Created, but the follow-up refresh failed.
			fmt.Fprintf(a.out, "Goal %s created\n", created.ID)
		}
		return a.goalFailed(err)
	}
	fmt.Fprintf(a.out, "Goal %s created\n", created.ID)
	return nil
}

// EditGoal seeds the form from the backend's copy of the goal. Computed
// fields are carried over so the update does not reset them.
func (a *App) EditGoal(ctx context.Context, id models.ID) error {
	g, err := a.goals.FetchGoal(ctx, id)
	if err != nil {
		return a.goalFailed(err)
	}
	form := forms.GoalFormFrom(g)
	if err := a.fillGoalForm(form); err != nil {
		return err
	}
	payload, err := form.Payload()
	if err != nil {
		return err
	}
	payload.CurrentValue = g.CurrentValue
	payload.Status = g.Status

	if _, err := a.goals.UpdateGoal(ctx, id, payload); err != nil {
		if form.ApplyServerErrors(err) {
			a.goals.ClearError()
			return form.Errors
		}
		return a.goalFailed(err)
	}
	fmt.Fprintf(a.out, "Goal %s updated\n", id)
	return nil
}

func (a *App) Progress(ctx context.Context, id models.ID, value float64, note string) error {
	g, err := a.goals.UpdateProgress(ctx, id, models.ProgressUpdate{Value: value, Note: note})
	if err != nil {
		return a.goalFailed(err)
	}
	fmt.Fprintf(a.out, "%s: %g / %g\n", g.Title, g.CurrentValue, g.TargetValue)
	return nil
}

func (a *App) DeleteGoal(ctx context.Context, id models.ID) error {
	ok, err := a.confirm(fmt.Sprintf("Delete goal %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.goals.DeleteGoal(ctx, id); err != nil {
		return a.goalFailed(err)
	}
	fmt.Fprintf(a.out, "Goal %s deleted\n", id)
	return nil
}

func (a *App) Deadlines(ctx context.Context) error {
	ds, err := a.goals.FetchUpcomingDeadlines(ctx)
	if err != nil {
		return a.goalFailed(err)
	}
	renderDeadlines(a.out, ds)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.goals.FetchStatistics(ctx)
	if err != nil {
		return a.goalFailed(err)
	}
	renderStats(a.out, s)
	return nil
}
