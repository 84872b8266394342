package stores

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

const (
	MsgFetchNotes = "Failed to fetch notes"
	MsgAddNote    = "Failed to add note"
	MsgUpdateNote = "Failed to update note"
	MsgDeleteNote = "Failed to delete note"
)

// NoteState holds the notes plus two independent input buffers: NoteText
// for inline adds and ModalNoteText for the add-note modal.
type NoteState struct {
	Notes              []models.Note
	NoteText           string
	ModalNoteText      string
	IsModalOpen        bool
	EditingNoteID      models.ID
	EditingNoteTitle   string
	EditingNoteContent string
	Error              string
}

func (s NoteState) clone() NoteState {
	out := s
	out.Notes = make([]models.Note, len(s.Notes))
	for i, n := range s.Notes {
		out.Notes[i] = n.Clone()
	}
	return out
}

// NoteStore caches notes. Failures are logged and also surfaced through
// Error and the returned error.
type NoteStore struct {
	api  client.NoteAPI
	opts options

	mu        sync.Mutex
	state     NoteState
	fetchedAt time.Time
}

func NewNoteStore(api client.NoteAPI, opts ...Option) *NoteStore {
	return &NoteStore{
		api:   api,
		opts:  buildOptions("notes", opts),
		state: NoteState{Notes: []models.Note{}},
	}
}

func (s *NoteStore) State() NoteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *NoteStore) SetNoteText(text string) {
	s.mu.Lock()
	s.state.NoteText = text
	s.mu.Unlock()
}

func (s *NoteStore) SetModalNoteText(text string) {
	s.mu.Lock()
	s.state.ModalNoteText = text
	s.mu.Unlock()
}

func (s *NoteStore) SetModalOpen(open bool) {
	s.mu.Lock()
	s.state.IsModalOpen = open
	s.mu.Unlock()
}

// SetEditingNote selects the note being edited; a nil title reads as "".
func (s *NoteStore) SetEditingNote(id models.ID, title *string, content string) {
	s.mu.Lock()
	s.state.EditingNoteID = id
	s.state.EditingNoteTitle = models.Deref(title)
	s.state.EditingNoteContent = content
	s.mu.Unlock()
}

func (s *NoteStore) ClearEditingNote() {
	s.mu.Lock()
	s.state.EditingNoteID = ""
	s.state.EditingNoteTitle = ""
	s.state.EditingNoteContent = ""
	s.mu.Unlock()
}

func (s *NoteStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *NoteStore) fail(ctx context.Context, op string, err error, fallback string) {
	s.opts.log.Error(ctx, "note action failed", "op", op, "error", err)
	s.mu.Lock()
	s.state.Error = client.Message(err, fallback)
	s.mu.Unlock()
}

func (s *NoteStore) clearErr() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *NoteStore) FetchNotes(ctx context.Context) ([]models.Note, error) {
	s.clearErr()
	notes, err := s.api.ListNotes(ctx)
	if err != nil {
		s.fail(ctx, "fetch_notes", err, MsgFetchNotes)
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	at := s.opts.now()

	s.mu.Lock()
	s.state.Notes = make([]models.Note, len(notes))
	for i, n := range notes {
		s.state.Notes[i] = n.Clone()
	}
	s.fetchedAt = at
	s.mu.Unlock()

	s.opts.saveSnapshot(ctx, SnapshotNotes, notes, at)
	return notes, nil
}

// AddNote posts the inline buffer and clears it on success. A blank buffer
// is a no-op that returns (nil, nil).
func (s *NoteStore) AddNote(ctx context.Context) (*models.Note, error) {
	s.mu.Lock()
	text := s.state.NoteText
	s.mu.Unlock()

	n, err := s.add(ctx, text)
	if n == nil || err != nil {
		return n, err
	}

	s.mu.Lock()
	s.state.NoteText = ""
	s.mu.Unlock()
	return n, nil
}

// AddModalNote posts the modal buffer; on success it clears the buffer and
// closes the modal. A blank buffer is a no-op.
func (s *NoteStore) AddModalNote(ctx context.Context) (*models.Note, error) {
	s.mu.Lock()
	text := s.state.ModalNoteText
	s.mu.Unlock()

	n, err := s.add(ctx, text)
	if n == nil || err != nil {
		return n, err
	}

	s.mu.Lock()
	s.state.ModalNoteText = ""
	s.state.IsModalOpen = false
	s.mu.Unlock()
	return n, nil
}

func (s *NoteStore) add(ctx context.Context, text string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	s.clearErr()
	created, err := s.api.CreateNote(ctx, text)
	if err != nil {
		s.fail(ctx, "add_note", err, MsgAddNote)
		return nil, err
	}

	s.mu.Lock()
	s.state.Notes = append(s.state.Notes, created.Clone())
	s.mu.Unlock()
	return &created, nil
}

func (s *NoteStore) UpdateNote(ctx context.Context, id models.ID, title, content string) (models.Note, error) {
	s.clearErr()
	updated, err := s.api.UpdateNote(ctx, id, title, content)
	if err != nil {
		s.fail(ctx, "update_note", err, MsgUpdateNote)
		return models.Note{}, err
	}

	s.mu.Lock()
	if i := slices.IndexFunc(s.state.Notes, func(n models.Note) bool { return n.ID == id }); i >= 0 {
		s.state.Notes[i] = updated.Clone()
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *NoteStore) DeleteNote(ctx context.Context, id models.ID) error {
	s.clearErr()
	if err := s.api.DeleteNote(ctx, id); err != nil {
		s.fail(ctx, "delete_note", err, MsgDeleteNote)
		return err
	}

	s.mu.Lock()
	s.state.Notes = slices.DeleteFunc(s.state.Notes, func(n models.Note) bool { return n.ID == id })
	s.mu.Unlock()
	return nil
}

// Restore loads the last notes snapshot unless a newer fetch already landed.
func (s *NoteStore) Restore(ctx context.Context) bool {
	var notes []models.Note
	at, ok := s.opts.loadSnapshot(ctx, SnapshotNotes, &notes)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetchedAt.IsZero() && !at.After(s.fetchedAt) {
		return false
	}
	if notes == nil {
		notes = []models.Note{}
	}
	s.state.Notes = notes
	s.fetchedAt = at
	return true
}
