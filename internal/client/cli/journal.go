package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/insights"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
	"github.com/dmitrijs2005/lifedash/internal/client/stores"
)

var errDateFormat = errors.New("date must be in YYYY-MM-DD format")

func (a *App) journalFailed(err error) error {
	return transient(err, a.journal.State().Error, a.journal.ClearError)
}

// ListJournal refreshes the entries and prints those matching the filter.
func (a *App) ListJournal(ctx context.Context) error {
	entries, err := a.journal.FetchEntries(ctx)
	if err != nil {
		return a.journalFailed(err)
	}
	shown := insights.FilterEntries(entries, a.filter)
	renderEntries(a.out, shown, termWidth())
	if len(shown) != len(entries) {
		fmt.Fprintf(a.out, "%d of %d entries shown\n", len(shown), len(entries))
	}
	return nil
}

// Filter edits the journal filter:
//
//	filter                  show the filter and the known tags and moods
//	filter clear            drop tag, mood and dates (the query stays)
//	filter query [text]     full-text search; no text clears it
//	filter tag|mood [v]     set or, with no value, clear
//	filter from|to [date]   YYYY-MM-DD, inclusive
func (a *App) Filter(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.showFilter()
		return nil
	}

	value := strings.Join(args[1:], " ")
	switch args[0] {
	case "clear":
		a.filter.Clear()
	case "query":
		a.filter.Query = value
	case "tag":
		if value != "" && !a.knownTag(value) {
			fmt.Fprintf(a.out, "No loaded entry is tagged %q\n", value)
		}
		a.filter.Tag = value
	case "mood":
		if value != "" && !models.IsMood(value) {
			return fmt.Errorf("unknown mood %q, expected one of: %s", value, strings.Join(models.Moods, " "))
		}
		a.filter.Mood = value
	case "from", "to":
		var d time.Time
		if value != "" {
			var err error
			d, err = time.ParseInLocation(time.DateOnly, value, time.Local)
			if err != nil {
				return errDateFormat
			}
		}
		if args[0] == "from" {
			a.filter.From = d
		} else {
			a.filter.To = d
		}
	default:
		return fmt.Errorf("unknown filter %q", args[0])
	}
	a.showFilter()
	return nil
}

func (a *App) showFilter() {
	f := a.filter
	fmt.Fprintf(a.out, "Active filters: %d\n", f.ActiveCount())
	if f.Query != "" {
		fmt.Fprintf(a.out, "  query: %s\n", f.Query)
	}
	if f.Tag != "" {
		fmt.Fprintf(a.out, "  tag:   %s\n", f.Tag)
	}
	if f.Mood != "" {
		fmt.Fprintf(a.out, "  mood:  %s\n", f.Mood)
	}
	if !f.From.IsZero() {
		fmt.Fprintf(a.out, "  from:  %s\n", f.From.Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		fmt.Fprintf(a.out, "  to:    %s\n", f.To.Format(time.DateOnly))
	}

	entries := a.journal.State().Entries
	if tags := insights.DistinctTags(entries); len(tags) > 0 {
		fmt.Fprintf(a.out, "Tags in use: %s\n", strings.Join(tags, ", "))
	}
	if moods := insights.DistinctMoods(entries); len(moods) > 0 {
		fmt.Fprintf(a.out, "Moods in use: %s\n", strings.Join(moods, " "))
	}
}

func (a *App) ShowEntry(ctx context.Context, id models.ID) error {
	e, err := a.journal.FetchEntry(ctx, id)
	if err != nil {
		return a.journalFailed(err)
	}
	renderEntry(a.out, e)
	return nil
}

// fillEntryForm prompts for each composer field with the current form value
// as the default.
func (a *App) fillEntryForm() error {
	f := a.journal.State().FormData

	title, err := a.askDefault("Title", f.Title)
	if err != nil {
		return err
	}
	content := f.Content
	if content != "" {
		fmt.Fprintf(a.out, "Current content:\n%s\n", content)
	}
	body, err := GetMultiline(a.reader, "Content (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	if body != "" {
		content = body
	}
	tags, err := a.askDefault("Tags (comma separated)", strings.Join(f.Tags, ", "))
	if err != nil {
		return err
	}
	mood, err := a.askDefault("Mood ("+strings.Join(models.Moods, " ")+")", f.Mood)
	if err != nil {
		return err
	}
	if mood != "" && !models.IsMood(mood) {
		fmt.Fprintln(a.out, "  unknown mood, keeping", f.Mood)
		mood = f.Mood
	}
	theme, err := a.askDefault("Theme ("+strings.Join(models.Themes, ", ")+")", models.Deref(f.Theme))
	if err != nil {
		return err
	}
	day, err := a.askDefault("Day of this month", strconv.Itoa(f.SelectedDate))
	if err != nil {
		return err
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return fmt.Errorf("day must be a number: %w", stores.ErrValidation)
	}

	for _, set := range []struct {
		field string
		value any
	}{
		{stores.FormTitle, title},
		{stores.FormContent, content},
		{stores.FormTags, stores.ParseTags(tags)},
		{stores.FormMood, mood},
		{stores.FormTheme, theme},
		{stores.FormSelectedDate, d},
	} {
		if err := a.journal.UpdateFormData(set.field, set.value); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) saveEntry(ctx context.Context, verb string) error {
	if err := a.fillEntryForm(); err != nil {
		a.journal.CloseModal()
		return err
	}
	saved, err := a.journal.SaveEntry(ctx)
	if err != nil {
		return a.journalFailed(err)
	}
	fmt.Fprintf(a.out, "Entry %s %s for %s\n", saved.ID, verb, insights.DisplayDate(saved.EntryDate))
	return nil
}

func (a *App) NewEntry(ctx context.Context) error {
	a.journal.OpenModal(stores.ModeCreate, nil)
	return a.saveEntry(ctx, "created")
}

// EditEntry seeds the composer from the backend's copy of the entry. Saving
// moves the entry into the current month.
func (a *App) EditEntry(ctx context.Context, id models.ID) error {
	e, err := a.journal.FetchEntry(ctx, id)
	if err != nil {
		return a.journalFailed(err)
	}
	a.journal.OpenModal(stores.ModeEdit, &e)
	return a.saveEntry(ctx, "updated")
}

func (a *App) DeleteEntry(ctx context.Context, id models.ID) error {
	ok, err := a.confirm(fmt.Sprintf("Delete entry %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.journal.DeleteEntry(ctx, id); err != nil {
		return a.journalFailed(err)
	}
	fmt.Fprintf(a.out, "Entry %s deleted\n", id)
	return nil
}

// knownTag reports whether any loaded entry carries tag.
func (a *App) knownTag(tag string) bool {
	return slices.Contains(insights.DistinctTags(a.journal.State().Entries), tag)
}
