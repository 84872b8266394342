package stores

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

const (
	MsgFetchEntries = "Failed to fetch entries"
	MsgFetchEntry   = "Failed to fetch entry"
	MsgCreateEntry  = "Failed to create entry"
	MsgUpdateEntry  = "Failed to update entry"
	MsgDeleteEntry  = "Failed to delete entry"

	MsgEntryRequired = "Please fill in title and content"
)

// ModalMode selects which backend call SaveEntry makes.
type ModalMode string

const (
	ModeCreate ModalMode = "create"
	ModeEdit   ModalMode = "edit"
)

// Form field names accepted by UpdateFormData.
const (
	FormTitle        = "title"
	FormContent      = "content"
	FormTags         = "tags"
	FormMood         = "mood"
	FormTheme        = "theme"
	FormSelectedDate = "selectedDate"
)

// FormData is the journal composer's input. SelectedDate is a day of the
// current month and is folded into entry_date on save.
type FormData struct {
	Title        string
	Content      string
	Tags         []string
	Mood         string
	Theme        *string
	SelectedDate int
}

func (f FormData) clone() FormData {
	f.Tags = slices.Clone(f.Tags)
	if f.Theme != nil {
		t := *f.Theme
		f.Theme = &t
	}
	return f
}

type JournalState struct {
	Entries      []models.JournalEntry
	CurrentEntry *models.JournalEntry
	IsLoading    bool
	Error        string
	IsModalOpen  bool
	ModalMode    ModalMode
	FormData     FormData
}

func (s JournalState) clone() JournalState {
	out := s
	out.Entries = cloneEntries(s.Entries)
	if s.CurrentEntry != nil {
		e := s.CurrentEntry.Clone()
		out.CurrentEntry = &e
	}
	out.FormData = s.FormData.clone()
	return out
}

// JournalStore caches journal entries and drives the entry composer.
type JournalStore struct {
	api  client.JournalAPI
	opts options

	mu        sync.Mutex
	state     JournalState
	pending   int
	fetchedAt time.Time
}

func NewJournalStore(api client.JournalAPI, opts ...Option) *JournalStore {
	s := &JournalStore{api: api, opts: buildOptions("journal", opts)}
	s.state = JournalState{
		Entries:   []models.JournalEntry{},
		ModalMode: ModeCreate,
		FormData:  s.blankForm(),
	}
	return s
}

func (s *JournalStore) State() JournalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *JournalStore) blankForm() FormData {
	return FormData{Tags: []string{}, SelectedDate: s.opts.now().Day()}
}

// OpenModal enters the composer. ModeEdit with a non-nil entry seeds the form
// from it; anything else opens a blank create form.
func (s *JournalStore) OpenModal(mode ModalMode, entry *models.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsModalOpen = true
	if mode == ModeEdit && entry != nil {
		e := entry.Clone()
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		s.state.ModalMode = ModeEdit
		s.state.CurrentEntry = &e
		s.state.FormData = FormData{
			Title:        e.Title,
			Content:      e.Content,
			Tags:         slices.Clone(tags),
			Mood:         e.Mood,
			Theme:        e.Theme,
			SelectedDate: e.EntryDate.In(s.opts.now().Location()).Day(),
		}
		return
	}
	s.state.ModalMode = ModeCreate
	s.state.CurrentEntry = nil
	s.state.FormData = s.blankForm()
}

// CloseModal discards the composer and its unsaved input.
func (s *JournalStore) CloseModal() {
	s.mu.Lock()
	s.closeModalLocked()
	s.mu.Unlock()
}

func (s *JournalStore) closeModalLocked() {
	s.state.IsModalOpen = false
	s.state.ModalMode = ModeCreate
	s.state.CurrentEntry = nil
	s.state.FormData = s.blankForm()
}

// UpdateFormData sets one composer field. Values must match the field's
// type: string, []string for tags, *string or string for theme, int for
// selectedDate.
func (s *JournalStore) UpdateFormData(field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &s.state.FormData
	switch field {
	case FormTitle, FormContent, FormMood:
		v, ok := value.(string)
		if !ok {
			return formTypeError(field, value)
		}
		switch field {
		case FormTitle:
			f.Title = v
		case FormContent:
			f.Content = v
		default:
			f.Mood = v
		}
	case FormTags:
		v, ok := value.([]string)
		if !ok {
			return formTypeError(field, value)
		}
		f.Tags = slices.Clone(v)
		if f.Tags == nil {
			f.Tags = []string{}
		}
	case FormTheme:
		switch v := value.(type) {
		case nil:
			f.Theme = nil
		case string:
			f.Theme = models.StringPtr(v)
		case *string:
			f.Theme = nil
			if v != nil {
				f.Theme = models.StringPtr(*v)
			}
		default:
			return formTypeError(field, value)
		}
	case FormSelectedDate:
		v, ok := value.(int)
		if !ok {
			return formTypeError(field, value)
		}
		f.SelectedDate = v
	default:
		return fmt.Errorf("unknown form field %q: %w", field, ErrValidation)
	}
	return nil
}

// formError is a composer validation failure; its text is shown as is.
type formError string

func (e formError) Error() string { return string(e) }
func (e formError) Unwrap() error { return ErrValidation }

func formTypeError(field string, value any) error {
	return fmt.Errorf("form field %q does not accept %T: %w", field, value, ErrValidation)
}

func (s *JournalStore) ResetFormData() {
	s.mu.Lock()
	s.state.FormData = s.blankForm()
	s.mu.Unlock()
}

func (s *JournalStore) SetCurrentEntry(entry *models.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry == nil {
		s.state.CurrentEntry = nil
		return
	}
	e := entry.Clone()
	s.state.CurrentEntry = &e
}

func (s *JournalStore) ClearCurrentEntry() {
	s.SetCurrentEntry(nil)
}

func (s *JournalStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// ComposeEntryDate builds entry_date from now's year and month and a
// selected day. Days outside the month are rejected rather than rolled over.
func ComposeEntryDate(now time.Time, day int) (time.Time, error) {
	last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if day < 1 || day > last {
		return time.Time{}, formError(fmt.Sprintf("Day %d is outside %s %d (1-%d)", day, now.Month(), now.Year(), last))
	}
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location()), nil
}

// ParseTags splits comma-separated input, trimming blanks away.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func composeEntry(f FormData, now time.Time) (models.JournalEntry, error) {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" {
		return models.JournalEntry{}, formError(MsgEntryRequired)
	}
	date, err := ComposeEntryDate(now, f.SelectedDate)
	if err != nil {
		return models.JournalEntry{}, err
	}
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.JournalEntry{
		Title:     f.Title,
		Content:   f.Content,
		Tags:      tags,
		Mood:      f.Mood,
		Theme:     f.Theme,
		EntryDate: date,
	}, nil
}

// SaveEntry submits the composer: update in edit mode with a current entry,
// create otherwise. The modal closes only on success; on failure the form is
// left intact and Error is set.
func (s *JournalStore) SaveEntry(ctx context.Context) (models.JournalEntry, error) {
	s.mu.Lock()
	mode := s.state.ModalMode
	var editID models.ID
	editing := mode == ModeEdit && s.state.CurrentEntry != nil
	if editing {
		editID = s.state.CurrentEntry.ID
	}
	f := s.state.FormData.clone()
	s.mu.Unlock()

	payload, err := composeEntry(f, s.opts.now())
	if err != nil {
		s.mu.Lock()
		s.state.Error = err.Error()
		s.mu.Unlock()
		return models.JournalEntry{}, err
	}

	var saved models.JournalEntry
	if editing {
		saved, err = s.UpdateEntry(ctx, editID, payload)
	} else {
		saved, err = s.CreateEntry(ctx, payload)
	}
	if err != nil {
		return models.JournalEntry{}, err
	}

	s.CloseModal()
	return saved, nil
}

func (s *JournalStore) begin() {
	s.mu.Lock()
	s.pending++
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *JournalStore) finishLocked() {
	s.pending--
	s.state.IsLoading = s.pending > 0
}

func (s *JournalStore) fail(ctx context.Context, op string, err error, fallback string) {
	s.mu.Lock()
	s.state.Error = client.Message(err, fallback)
	s.finishLocked()
	s.mu.Unlock()
	s.opts.log.Warn(ctx, "journal action failed", "op", op, "error", err)
}

func (s *JournalStore) FetchEntries(ctx context.Context) ([]models.JournalEntry, error) {
	s.begin()
	entries, err := s.api.ListEntries(ctx)
	if err != nil {
		s.fail(ctx, "fetch_entries", err, MsgFetchEntries)
		return nil, err
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	at := s.opts.now()

	s.mu.Lock()
	s.state.Entries = cloneEntries(entries)
	s.fetchedAt = at
	s.finishLocked()
	s.mu.Unlock()

	s.opts.saveSnapshot(ctx, SnapshotJournal, entries, at)
	s.opts.log.Debug(ctx, "entries fetched", "count", len(entries))
	return entries, nil
}

func (s *JournalStore) FetchEntry(ctx context.Context, id models.ID) (models.JournalEntry, error) {
	s.begin()
	e, err := s.api.GetEntry(ctx, id)
	if err != nil {
		s.fail(ctx, "fetch_entry", err, MsgFetchEntry)
		return models.JournalEntry{}, err
	}

	s.mu.Lock()
	c := e.Clone()
	s.state.CurrentEntry = &c
	s.finishLocked()
	s.mu.Unlock()
	return e, nil
}

// CreateEntry prepends the created entry.
func (s *JournalStore) CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	s.begin()
	created, err := s.api.CreateEntry(ctx, entry)
	if err != nil {
		s.fail(ctx, "create_entry", err, MsgCreateEntry)
		return models.JournalEntry{}, err
	}

	s.mu.Lock()
	s.state.Entries = append([]models.JournalEntry{created.Clone()}, s.state.Entries...)
	s.finishLocked()
	s.mu.Unlock()
	return created, nil
}

func (s *JournalStore) UpdateEntry(ctx context.Context, id models.ID, entry models.JournalEntry) (models.JournalEntry, error) {
	s.begin()
	updated, err := s.api.UpdateEntry(ctx, id, entry)
	if err != nil {
		s.fail(ctx, "update_entry", err, MsgUpdateEntry)
		return models.JournalEntry{}, err
	}

	s.mu.Lock()
	if i := slices.IndexFunc(s.state.Entries, func(e models.JournalEntry) bool { return e.ID == id }); i >= 0 {
		s.state.Entries[i] = updated.Clone()
	}
	if s.state.CurrentEntry != nil && s.state.CurrentEntry.ID == id {
		c := updated.Clone()
		s.state.CurrentEntry = &c
	}
	s.finishLocked()
	s.mu.Unlock()
	return updated, nil
}

func (s *JournalStore) DeleteEntry(ctx context.Context, id models.ID) error {
	s.begin()
	if err := s.api.DeleteEntry(ctx, id); err != nil {
		s.fail(ctx, "delete_entry", err, MsgDeleteEntry)
		return err
	}

	s.mu.Lock()
	s.state.Entries = slices.DeleteFunc(s.state.Entries, func(e models.JournalEntry) bool { return e.ID == id })
	if s.state.CurrentEntry != nil && s.state.CurrentEntry.ID == id {
		s.state.CurrentEntry = nil
	}
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// Restore loads the last journal snapshot unless a newer fetch already
// landed.
func (s *JournalStore) Restore(ctx context.Context) bool {
	var entries []models.JournalEntry
	at, ok := s.opts.loadSnapshot(ctx, SnapshotJournal, &entries)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetchedAt.IsZero() && !at.After(s.fetchedAt) {
		return false
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	s.state.Entries = entries
	s.fetchedAt = at
	return true
}

func cloneEntries(in []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
