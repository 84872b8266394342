package insights

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// JournalFilter is the journal list's filter set. Zero fields are inactive.
// From and To are calendar days, both inclusive.
type JournalFilter struct {
	Query string
	Tag   string
	Mood  string
	From  time.Time
	To    time.Time
}

// ActiveCount counts the set tag, mood and date bounds. The search query is
// not counted.
func (f JournalFilter) ActiveCount() int {
	n := 0
	if f.Tag != "" {
		n++
	}
	if f.Mood != "" {
		n++
	}
	if !f.From.IsZero() {
		n++
	}
	if !f.To.IsZero() {
		n++
	}
	return n
}

// Clear resets everything except the search query.
func (f *JournalFilter) Clear() {
	*f = JournalFilter{Query: f.Query}
}

// Matches reports whether e satisfies every active criterion.
func (f JournalFilter) Matches(e models.JournalEntry) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Content), q) &&
			!strings.Contains(DisplayDate(e.EntryDate), q) {
			return false
		}
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	if f.Mood != "" && e.Mood != f.Mood {
		return false
	}
	day := civilDay(e.EntryDate)
	if !f.From.IsZero() && day.Before(civilDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(civilDay(f.To)) {
		return false
	}
	return true
}

// FilterEntries keeps the matching entries in their original order.
func FilterEntries(entries []models.JournalEntry, f JournalFilter) []models.JournalEntry {
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// DistinctTags lists every tag once, in first-seen order.
func DistinctTags(entries []models.JournalEntry) []string {
	var out []string
	for _, e := range entries {
		for _, t := range e.Tags {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// DistinctMoods lists every non-empty mood once, in first-seen order.
func DistinctMoods(entries []models.JournalEntry) []string {
	var out []string
	for _, e := range entries {
		if e.Mood != "" && !slices.Contains(out, e.Mood) {
			out = append(out, e.Mood)
		}
	}
	return out
}

// DisplayDate is the en-US short date, M/D/YYYY.
func DisplayDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// civilDay drops the clock, keeping the calendar date as seen in t's zone.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
