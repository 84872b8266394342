package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var out []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, content string) (models.Note, error) {
	var out models.Note
	if err := c.do(ctx, http.MethodPost, "/notes", models.NoteCreate{Content: content}, &out); err != nil {
		return models.Note{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id models.ID, title, content string) (models.Note, error) {
	var out models.Note
	body := models.NoteUpdate{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPut, idPath("/notes", id), body, &out); err != nil {
		return models.Note{}, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, idPath("/notes", id), nil, nil)
}
