package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalStringAndNumber(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"g-1","b":42,"c":null}`), &v))
	require.Equal(t, ID("g-1"), v.A)
	require.Equal(t, ID("42"), v.B)
	require.Equal(t, ID(""), v.C)
}

func TestID_UnmarshalRejectsObject(t *testing.T) {
	var id ID
	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestID_MarshalKeepsNumericIDsNumeric(t *testing.T) {
	b, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}{A: "7", B: "abc"})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":7,"b":"abc"}`, string(b))
}

func TestID_NonCanonicalIntegersStayStrings(t *testing.T) {
	for _, raw := range []string{`"007"`, `"+5"`, `"-0"`} {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(raw), &id))

		b, err := json.Marshal(Note{ID: id})
		require.NoError(t, err, raw)

		var back Note
		require.NoError(t, json.Unmarshal(b, &back))
		require.Equal(t, id, back.ID, raw)
	}
}

func TestGoal_DecodesBackendShape(t *testing.T) {
	raw := `{
		"id": 3, "title": "Run 100km", "category": "Health", "description": null,
		"type": "Manual", "metric": "km", "target_value": 100, "start_value": 0,
		"current_value": 35.5, "start_date": "2024-05-01", "end_date": "2024-06-01",
		"frequency": "Weekly", "reminders_enabled": true, "status": "ongoing",
		"deadline": "Jun 1, 2024"
	}`
	var g Goal
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	require.Equal(t, ID("3"), g.ID)
	require.Equal(t, CategoryHealth, g.Category)
	require.Nil(t, g.Description)
	require.Equal(t, "km", Deref(g.Metric))
	require.InDelta(t, 35.5, g.CurrentValue, 1e-9)
	require.Equal(t, GoalStatusOngoing, g.Status)
}

func TestGoal_CloneDoesNotSharePointers(t *testing.T) {
	g := Goal{Metric: StringPtr("km")}
	c := g.Clone()
	*c.Metric = "miles"
	require.Equal(t, "km", *g.Metric)
}

func TestUpcomingDeadline_FlattensGoal(t *testing.T) {
	var d UpcomingDeadline
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","title":"T","days_remaining":-2,"progress_percentage":40}`), &d))
	require.Equal(t, "T", d.Title)
	require.Equal(t, -2, d.DaysRemaining)
}

func TestJournalEntry_CloneAndTags(t *testing.T) {
	e := JournalEntry{Tags: []string{"travel", "food"}, EntryDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	c := e.Clone()
	c.Tags[0] = "work"
	require.True(t, e.HasTag("travel"))
	require.False(t, e.HasTag("work"))
	require.True(t, IsMood("Sad"))
	require.False(t, IsMood("sad"))
}

func TestStringPtr(t *testing.T) {
	require.Nil(t, StringPtr(""))
	require.Equal(t, "x", *StringPtr("x"))
	require.Equal(t, "", Deref(nil))
}

func TestJournalEntry_DecodesDateShapes(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-05-01T10:30:00Z"`: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		`"2024-05-01"`:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
	}
	for raw, want := range cases {
		var e JournalEntry
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"Trip","entry_date":`+raw+`}`), &e), raw)
		require.True(t, want.Equal(e.EntryDate), raw)
		require.Equal(t, "Trip", e.Title)
	}

	var e JournalEntry
	require.Error(t, json.Unmarshal([]byte(`{"entry_date":"yesterday"}`), &e))
}
