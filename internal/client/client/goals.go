package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// envelope is the goal endpoints' response wrapper.
type envelope[T any] struct {
	Data       T                      `json:"data"`
	Statistics *models.GoalStatistics `json:"statistics,omitempty"`
}

type progressData struct {
	Goal models.Goal `json:"goal"`
}

func (c *HTTPClient) ListGoals(ctx context.Context) ([]models.Goal, *models.GoalStatistics, error) {
	var env envelope[[]models.Goal]
	if err := c.do(ctx, http.MethodGet, "/goals", nil, &env); err != nil {
		return nil, nil, err
	}
	return env.Data, env.Statistics, nil
}

func (c *HTTPClient) CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.ID = ""
	var env envelope[models.Goal]
	if err := c.do(ctx, http.MethodPost, "/goals", goal, &env); err != nil {
		return models.Goal{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) GetGoal(ctx context.Context, id models.ID) (models.Goal, error) {
	var env envelope[models.Goal]
	if err := c.do(ctx, http.MethodGet, idPath("/goals", id), nil, &env); err != nil {
		return models.Goal{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) UpdateGoal(ctx context.Context, id models.ID, goal models.Goal) (models.Goal, error) {
	goal.ID = ""
	var env envelope[models.Goal]
	if err := c.do(ctx, http.MethodPut, idPath("/goals", id), goal, &env); err != nil {
		return models.Goal{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) DeleteGoal(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, idPath("/goals", id), nil, nil)
}

func (c *HTTPClient) UpdateGoalProgress(ctx context.Context, id models.ID, update models.ProgressUpdate) (models.Goal, error) {
	var env envelope[progressData]
	if err := c.do(ctx, http.MethodPost, idPath("/goals", id)+"/progress", update, &env); err != nil {
		return models.Goal{}, err
	}
	return env.Data.Goal, nil
}

func (c *HTTPClient) UpcomingDeadlines(ctx context.Context) ([]models.UpcomingDeadline, error) {
	var env envelope[[]models.UpcomingDeadline]
	if err := c.do(ctx, http.MethodGet, "/goals-upcoming-deadlines", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *HTTPClient) GoalsByCategory(ctx context.Context, category models.GoalCategory) ([]models.Goal, error) {
	var env envelope[[]models.Goal]
	path := "/goals-by-category/" + url.PathEscape(string(category))
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *HTTPClient) GoalStatistics(ctx context.Context) (*models.GoalStatistics, error) {
	var env envelope[struct{}]
	if err := c.do(ctx, http.MethodGet, "/goals-statistics", nil, &env); err != nil {
		return nil, err
	}
	return env.Statistics, nil
}
