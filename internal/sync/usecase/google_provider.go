package usecase

import (
	"context"

	"studysync-backend/pkg/gcal"
)

// googleTaskProvider adapts the Google Tasks service to the engine's
// TaskProvider interface, loading the stored OAuth token per call and
// persisting refreshed tokens back to the store.
type googleTaskProvider struct {
	service    *gcal.Service
	tokens     *gcal.TokenStore
	tasklistID string
}

// NewGoogleTaskProvider binds the engine's task mutations to a Google Tasks
// list.
func NewGoogleTaskProvider(service *gcal.Service, tokens *gcal.TokenStore, tasklistID string) TaskProvider {
	return &googleTaskProvider{
		service:    service,
		tokens:     tokens,
		tasklistID: tasklistID,
	}
}

func (p *googleTaskProvider) CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return "", err
	}
	return p.service.CreateTask(ctx, token, p.tasklistID, payload, p.tokens.Save)
}

func (p *googleTaskProvider) UpdateTask(ctx context.Context, taskID string, payload gcal.TaskPayload) (bool, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return false, err
	}
	return p.service.UpdateTask(ctx, token, p.tasklistID, taskID, payload, p.tokens.Save)
}
