package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Mood labels offered by the composer, in display order.
const (
	MoodHappy   = "Happy"
	MoodGood    = "Good"
	MoodNeutral = "Neutral"
	MoodSad     = "Sad"
	MoodCrying  = "Crying"
)

var Moods = []string{MoodHappy, MoodGood, MoodNeutral, MoodSad, MoodCrying}

// Theme tokens are opaque colour names rendered by the view.
var Themes = []string{"bg-blue-100", "bg-pink-100", "bg-yellow-100"}

// JournalEntry is a dated journal record. Tag order is preserved for display
// but irrelevant for matching.
type JournalEntry struct {
	ID        ID        `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Mood      string    `json:"mood"`
	Theme     *string   `json:"theme"`
	EntryDate time.Time `json:"entry_date"`
}

func (e JournalEntry) Clone() JournalEntry {
	e.Tags = slices.Clone(e.Tags)
	e.Theme = cloneString(e.Theme)
	return e
}

// HasTag reports exact membership of tag.
func (e JournalEntry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

func IsMood(s string) bool {
	return slices.Contains(Moods, s)
}

// entryDateLayouts are tried in order; date-only values are read as local
// midnight.
var entryDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (e *JournalEntry) UnmarshalJSON(b []byte) error {
	type alias JournalEntry
	aux := struct {
		*alias
		EntryDate *string `json:"entry_date"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.EntryDate == nil || *aux.EntryDate == "" {
		e.EntryDate = time.Time{}
		return nil
	}
	t, err := ParseEntryDate(*aux.EntryDate)
	if err != nil {
		return err
	}
	e.EntryDate = t
	return nil
}

// ParseEntryDate accepts the timestamp shapes the backend has been seen to
// emit for entry_date.
func ParseEntryDate(s string) (time.Time, error) {
	for _, layout := range entryDateLayouts {
		if layout == time.DateOnly {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid entry_date %q", s)
}
