package usecase

import (
	"context"

	scheduledomain "studysync-backend/internal/schedule/domain"
	"studysync-backend/pkg/gcal"
)

// ScheduleUsecase turns natural-language utterances into staged actions and,
// on confirmation, into Google Calendar events or Google Tasks.
type ScheduleUsecase interface {
	// StageItem parses an utterance and stages the result for confirmation.
	StageItem(ctx context.Context, userID, text string) (*scheduledomain.PendingAction, error)

	// Confirm executes a staged action for its owner. The returned string is
	// the event link for events, or the created task id for tasks.
	Confirm(ctx context.Context, userID, actionID string) (string, error)

	// Cancel discards a staged action.
	Cancel(userID, actionID string) error

	// CompleteTaskByTitle fuzzy-matches an open task by rough title and marks
	// the best match completed, returning the matched title.
	CompleteTaskByTitle(ctx context.Context, query string) (string, error)
}

// GoogleProvider is the slice of the Google layer this usecase consumes.
type GoogleProvider interface {
	CreateEvent(ctx context.Context, payload gcal.EventPayload) (string, error)
	CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error)
	ListOpenTasks(ctx context.Context) ([]TaskRef, error)
	CompleteTask(ctx context.Context, taskID string) error
}

// TaskRef is a remote task reference used by the fuzzy completion flow.
type TaskRef struct {
	ID    string
	Title string
}
