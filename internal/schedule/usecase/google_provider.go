package usecase

import (
	"context"

	"studysync-backend/pkg/gcal"
)

// googleProvider adapts the Google layer to the GoogleProvider interface,
// loading the stored token per call and persisting refreshes.
type googleProvider struct {
	service    *gcal.Service
	tokens     *gcal.TokenStore
	tasklistID string
	calendarID string
}

// NewGoogleProvider binds the scheduling flow to the user's Google calendar
// and task list.
func NewGoogleProvider(service *gcal.Service, tokens *gcal.TokenStore, tasklistID, calendarID string) GoogleProvider {
	return &googleProvider{
		service:    service,
		tokens:     tokens,
		tasklistID: tasklistID,
		calendarID: calendarID,
	}
}

func (p *googleProvider) CreateEvent(ctx context.Context, payload gcal.EventPayload) (string, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return "", err
	}
	return p.service.CreateEvent(ctx, token, p.calendarID, payload, p.tokens.Save)
}

func (p *googleProvider) CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return "", err
	}
	return p.service.CreateTask(ctx, token, p.tasklistID, payload, p.tokens.Save)
}

func (p *googleProvider) ListOpenTasks(ctx context.Context) ([]TaskRef, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return nil, err
	}
	tasks, err := p.service.ListTasks(ctx, token, p.tasklistID, p.tokens.Save)
	if err != nil {
		return nil, err
	}
	refs := make([]TaskRef, 0, len(tasks))
	for _, task := range tasks {
		refs = append(refs, TaskRef{ID: task.Id, Title: task.Title})
	}
	return refs, nil
}

func (p *googleProvider) CompleteTask(ctx context.Context, taskID string) error {
	token, err := p.tokens.Load()
	if err != nil {
		return err
	}
	return p.service.CompleteTask(ctx, token, p.tasklistID, taskID, p.tokens.Save)
}
