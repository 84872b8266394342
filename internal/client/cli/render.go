package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/lifedash/internal/client/insights"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
	"github.com/dmitrijs2005/lifedash/internal/client/repositories/snapshots"
)

// failure is a store action error as shown to the user: the store's message,
// with the cause kept for errors.Is.
type failure struct {
	msg string
	err error
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.err }

// transient turns a store failure into a one-shot message and clears the
// store's error so it is not shown twice.
func transient(err error, msg string, clear func()) error {
	clear()
	if msg == "" {
		msg = err.Error()
	}
	return &failure{msg: msg, err: err}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// truncate shortens s to n runes, ending in "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func renderGoals(w io.Writer, goals []models.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals yet")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPROGRESS\tSTATUS\tEND")
	for _, g := range goals {
		p := insights.ProgressPercent(g.CurrentValue, g.TargetValue)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %.0f%%\t%s\t%s\n",
			g.ID, truncate(g.Title, 32), g.Category, bar(p, 10), p, g.Status, g.EndDate)
	}
	tw.Flush()
}

func renderGoal(w io.Writer, g models.Goal) {
	p := insights.ProgressPercent(g.CurrentValue, g.TargetValue)
	fmt.Fprintf(w, "%s (#%s)\n", g.Title, g.ID)
	fmt.Fprintf(w, "  Category:  %s\n", g.Category)
	fmt.Fprintf(w, "  Type:      %s\n", g.Type)
	if d := models.Deref(g.Description); d != "" {
		fmt.Fprintf(w, "  About:     %s\n", d)
	}
	metric := models.Deref(g.Metric)
	fmt.Fprintf(w, "  Progress:  %g / %g %s %s %.0f%%\n", g.CurrentValue, g.TargetValue, metric, bar(p, 20), p)
	fmt.Fprintf(w, "  Period:    %s .. %s\n", g.StartDate, g.EndDate)
	if f := models.Deref(g.Frequency); f != "" {
		fmt.Fprintf(w, "  Frequency: %s\n", f)
	}
	if g.Status != "" {
		fmt.Fprintf(w, "  Status:    %s\n", g.Status)
	}
}

func renderDeadlines(w io.Writer, ds []models.UpcomingDeadline) {
	if len(ds) == 0 {
		fmt.Fprintln(w, "No upcoming deadlines")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tURGENCY\tPROGRESS")
	for _, d := range ds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\n",
			d.ID, truncate(d.Title, 32), insights.DaysLabel(d.DaysRemaining), insights.Urgency(d.DaysRemaining), d.ProgressPercentage)
	}
	tw.Flush()
}

func renderStats(w io.Writer, s *models.GoalStatistics) {
	if s == nil {
		fmt.Fprintln(w, "No statistics yet")
		return
	}
	fmt.Fprintf(w, "Total: %d  Completed: %d  Ongoing: %d  Overall: %.0f%%\n",
		s.TotalGoals, s.CompletedGoals, s.OngoingGoals, s.OverallProgress)
}

func renderEntries(w io.Writer, entries []models.JournalEntry, width int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tMOOD\tTITLE\tTAGS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, insights.DisplayDate(e.EntryDate), e.Mood, truncate(e.Title, width/3), strings.Join(e.Tags, ", "))
	}
	tw.Flush()
}

func renderEntry(w io.Writer, e models.JournalEntry) {
	fmt.Fprintf(w, "%s (#%s) %s %s\n", e.Title, e.ID, insights.DisplayDate(e.EntryDate), e.Mood)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Content)
}

func noteTitle(n models.Note) string {
	if t := models.Deref(n.Title); t != "" {
		return t
	}
	return "Untitled"
}

func renderNotes(w io.Writer, notes []models.Note, width int) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes yet")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCONTENT")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, truncate(noteTitle(n), 24), truncate(n.Content, width/2))
	}
	tw.Flush()
}

func renderBudget(w io.Writer, b insights.Budget) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Needs (%.0f%%)\t%.2f\n", insights.NeedsShare*100, b.Needs)
	fmt.Fprintf(tw, "Wants (%.0f%%)\t%.2f\n", insights.WantsShare*100, b.Wants)
	fmt.Fprintf(tw, "Savings (%.0f%%)\t%.2f\n", insights.SavingsShare*100, b.Savings)
	tw.Flush()
}

func renderSnapshots(w io.Writer, list []snapshots.Snapshot) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Snapshot cache is empty")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "KEY\tSIZE\tFETCHED")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%d B\t%s\n", s.Key, len(s.Value), s.FetchedAt.Local().Format(time.DateTime))
	}
	tw.Flush()
}
