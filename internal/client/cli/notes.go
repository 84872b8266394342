package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
	"github.com/dmitrijs2005/lifedash/internal/common"
)

func (a *App) noteFailed(err error) error {
	return transient(err, a.notes.State().Error, a.notes.ClearError)
}

func (a *App) ListNotes(ctx context.Context) error {
	notes, err := a.notes.FetchNotes(ctx)
	if err != nil {
		return a.noteFailed(err)
	}
	renderNotes(a.out, notes, termWidth())
	return nil
}

// AddNote posts text through the inline buffer. Without text it opens the
// note modal and reads a multi-line body instead. Blank input adds nothing.
func (a *App) AddNote(ctx context.Context, text string) error {
	var (
		n   *models.Note
		err error
	)
	if text != "" {
		a.notes.SetNoteText(text)
		n, err = a.notes.AddNote(ctx)
	} else {
		a.notes.SetModalOpen(true)
		body, rerr := GetMultiline(a.reader, "Note", a.out)
		if rerr != nil {
			a.notes.SetModalOpen(false)
			return rerr
		}
		a.notes.SetModalNoteText(body)
		n, err = a.notes.AddModalNote(ctx)
		if n == nil {
			a.notes.SetModalOpen(false)
		}
	}
	if err != nil {
		return a.noteFailed(err)
	}
	if n == nil {
		fmt.Fprintln(a.out, "Nothing to add")
		return nil
	}
	fmt.Fprintf(a.out, "Note %s added\n", n.ID)
	return nil
}

// EditNote edits a note from the last fetched list.
func (a *App) EditNote(ctx context.Context, id models.ID) error {
	notes := a.notes.State().Notes
	i := slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return fmt.Errorf("note %s %w, run 'notes' first", id, common.ErrNotFound)
	}
	n := notes[i]

	a.notes.SetEditingNote(n.ID, n.Title, n.Content)
	defer a.notes.ClearEditingNote()

	st := a.notes.State()
	title, err := a.askDefault("Title", st.EditingNoteTitle)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Current content:\n%s\n", st.EditingNoteContent)
	content, err := GetMultiline(a.reader, "Content (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = st.EditingNoteContent
	}

	if _, err := a.notes.UpdateNote(ctx, id, title, content); err != nil {
		return a.noteFailed(err)
	}
	fmt.Fprintf(a.out, "Note %s updated\n", id)
	return nil
}

func (a *App) DeleteNote(ctx context.Context, id models.ID) error {
	ok, err := a.confirm(fmt.Sprintf("Delete note %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.notes.DeleteNote(ctx, id); err != nil {
		return a.noteFailed(err)
	}
	fmt.Fprintf(a.out, "Note %s deleted\n", id)
	return nil
}
