package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	scheduledomain "studysync-backend/internal/schedule/domain"
	"studysync-backend/pkg/ai"
	"studysync-backend/pkg/fuzzy"
	"studysync-backend/pkg/gcal"

	"github.com/google/uuid"
)

// Staged actions expire after this window, matching the confirm button
// timeout in the chat layer.
const pendingTTL = 60 * time.Second

// Fuzzy matches below this score are never offered for completion.
const minMatchScore = 25

type scheduleUsecase struct {
	parser ai.Parser
	google GoogleProvider

	mu      sync.Mutex
	pending map[string]*scheduledomain.PendingAction
}

// NewScheduleUsecase creates the scheduling flow.
func NewScheduleUsecase(parser ai.Parser, google GoogleProvider) ScheduleUsecase {
	return &scheduleUsecase{
		parser:  parser,
		google:  google,
		pending: make(map[string]*scheduledomain.PendingAction),
	}
}

// StageItem parses the utterance and holds the result until the user
// confirms, cancels, or the window expires.
func (u *scheduleUsecase) StageItem(ctx context.Context, userID, text string) (*scheduledomain.PendingAction, error) {
	item, err := u.parser.ParseItem(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	if item.Type == ai.ItemTypeEvent && (item.StartTime == "" || item.EndTime == "") {
		return nil, fmt.Errorf("event is missing a start or end time")
	}

	now := time.Now()
	action := &scheduledomain.PendingAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Item:      *item,
		CreatedAt: now,
		ExpiresAt: now.Add(pendingTTL),
	}

	u.mu.Lock()
	u.evictExpiredLocked(now)
	u.pending[action.ID] = action
	u.mu.Unlock()

	log.Printf("[Schedule] Staged %s %q for user %s", item.Type, item.Title, userID)
	return action, nil
}

// Confirm executes a staged action. Only the user who staged it may confirm,
// and only inside the expiry window.
func (u *scheduleUsecase) Confirm(ctx context.Context, userID, actionID string) (string, error) {
	action, err := u.take(userID, actionID)
	if err != nil {
		return "", err
	}

	switch action.Item.Type {
	case ai.ItemTypeEvent:
		link, err := u.google.CreateEvent(ctx, gcal.EventPayload{
			Title:     action.Item.Title,
			StartTime: action.Item.StartTime,
			EndTime:   action.Item.EndTime,
			Location:  action.Item.Location,
			Notes:     action.Item.Notes,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create event: %w", err)
		}
		log.Printf("[Schedule] Created event %q for user %s", action.Item.Title, userID)
		return link, nil

	default:
		taskID, err := u.google.CreateTask(ctx, gcal.TaskPayload{
			Title: action.Item.Title,
			Due:   action.Item.DueDate,
			Notes: action.Item.Notes,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create task: %w", err)
		}
		log.Printf("[Schedule] Created task %q for user %s", action.Item.Title, userID)
		return taskID, nil
	}
}

// Cancel discards a staged action without executing it.
func (u *scheduleUsecase) Cancel(userID, actionID string) error {
	_, err := u.take(userID, actionID)
	return err
}

// CompleteTaskByTitle lists open tasks, fuzzy-matches the query against their
// titles and completes the best match.
func (u *scheduleUsecase) CompleteTaskByTitle(ctx context.Context, query string) (string, error) {
	tasks, err := u.google.ListOpenTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list tasks: %w", err)
	}

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}

	matches := fuzzy.BestMatches(query, titles, minMatchScore)
	if len(matches) == 0 {
		return "", fmt.Errorf("no task matching %q", query)
	}

	best := tasks[matches[0].Index]
	if err := u.google.CompleteTask(ctx, best.ID); err != nil {
		return "", fmt.Errorf("failed to complete task %q: %w", best.Title, err)
	}
	log.Printf("[Schedule] Completed task %q (score %d)", best.Title, matches[0].Score)
	return best.Title, nil
}

// take removes a pending action after validating ownership and expiry.
func (u *scheduleUsecase) take(userID, actionID string) (*scheduledomain.PendingAction, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	action, ok := u.pending[actionID]
	if !ok {
		return nil, scheduledomain.ErrPendingNotFound
	}
	if action.UserID != userID {
		return nil, scheduledomain.ErrNotOwner
	}
	delete(u.pending, actionID)
	if action.Expired(time.Now()) {
		return nil, scheduledomain.ErrPendingExpired
	}
	return action, nil
}

func (u *scheduleUsecase) evictExpiredLocked(now time.Time) {
	for id, action := range u.pending {
		if action.Expired(now) {
			delete(u.pending, id)
		}
	}
}
