package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	if err := c.do(ctx, http.MethodGet, "/journals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetEntry(ctx context.Context, id models.ID) (models.JournalEntry, error) {
	var out models.JournalEntry
	if err := c.do(ctx, http.MethodGet, idPath("/journals", id), nil, &out); err != nil {
		return models.JournalEntry{}, err
	}
	return out, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	entry.ID = ""
	var out models.JournalEntry
	if err := c.do(ctx, http.MethodPost, "/journals", entry, &out); err != nil {
		return models.JournalEntry{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id models.ID, entry models.JournalEntry) (models.JournalEntry, error) {
	entry.ID = ""
	var out models.JournalEntry
	if err := c.do(ctx, http.MethodPut, idPath("/journals", id), entry, &out); err != nil {
		return models.JournalEntry{}, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, idPath("/journals", id), nil, nil)
}
