package models

// Note is a free-text note; the title is optional.
type Note struct {
	ID      ID      `json:"id,omitempty"`
	Title   *string `json:"title"`
	Content string  `json:"content"`
}

func (n Note) Clone() Note {
	n.Title = cloneString(n.Title)
	return n
}

// NoteCreate is the body of POST /notes.
type NoteCreate struct {
	Content string `json:"content"`
}

// NoteUpdate is the body of PUT /notes/{id}.
type NoteUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
