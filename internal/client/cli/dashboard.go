package cli

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/lifedash/internal/client/insights"
)

// refreshLimit caps concurrent backend calls during a dashboard refresh.
const refreshLimit = 4

// refresh reloads every store concurrently. All fetches run to completion;
// the first failure is returned. Stores keep their previous data on failure.
func (a *App) refresh(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(refreshLimit)

	g.Go(func() error {
		_, err := a.goals.FetchGoals(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.goals.FetchUpcomingDeadlines(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.journal.FetchEntries(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.notes.FetchNotes(ctx)
		return err
	})
	return g.Wait()
}

// Dashboard refreshes everything, then renders whatever the stores hold.
// A failed refresh still renders the cached state before reporting.
func (a *App) Dashboard(ctx context.Context) error {
	err := a.refresh(ctx)

	gs := a.goals.State()
	js := a.journal.State()
	ns := a.notes.State()

	sum := insights.Summarize(gs.Goals, gs.Statistics)
	fmt.Fprintln(a.out, strings.Repeat("=", min(termWidth(), 60)))
	fmt.Fprintf(a.out, "Goals: %d total, %d completed, %d ongoing, %.0f%% overall\n",
		sum.TotalGoals, sum.CompletedGoals, sum.OngoingGoals, sum.OverallProgress)
	for _, p := range sum.Goals {
		fmt.Fprintf(a.out, "  %-32s %s %3.0f%%\n", truncate(p.Goal.Title, 32), bar(p.Percent, 20), p.Percent)
	}

	urgent := 0
	for _, d := range gs.UpcomingDeadlines {
		if insights.Urgency(d.DaysRemaining) != insights.UrgencyNormal {
			urgent++
		}
	}
	fmt.Fprintf(a.out, "Deadlines: %d upcoming, %d urgent or overdue\n", len(gs.UpcomingDeadlines), urgent)
	fmt.Fprintf(a.out, "Journal: %d entries", len(js.Entries))
	if len(js.Entries) > 0 {
		latest := js.Entries[0]
		fmt.Fprintf(a.out, ", latest %q on %s", latest.Title, insights.DisplayDate(latest.EntryDate))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Notes: %d\n", len(ns.Notes))

	if err != nil {
		msg := firstNonEmpty(gs.Error, js.Error, ns.Error)
		a.goals.ClearError()
		a.journal.ClearError()
		a.notes.ClearError()
		return &failure{msg: firstNonEmpty(msg, err.Error()), err: err}
	}
	return nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
