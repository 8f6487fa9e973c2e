package gcal

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Scopes required for event and task creation.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/tasks",
}

// TokenUpdateFunc is called whenever the underlying token source refreshes
// the access token, so the caller can persist the new token.
type TokenUpdateFunc func(token *oauth2.Token) error

// TaskPayload is the shape accepted by the Google Tasks mutation calls.
// Due is a date-only string (YYYY-MM-DD) or empty.
type TaskPayload struct {
	Title string
	Due   string
	Notes string
}

// EventPayload is the shape accepted by the Calendar event insert call.
type EventPayload struct {
	Title     string
	StartTime string // RFC3339
	EndTime   string // RFC3339
	Location  string
	Notes     string
}

type Service struct {
	clientID     string
	clientSecret string
}

// notifyTokenSource wraps an oauth2.TokenSource and invokes a callback when
// the access token changes, so refreshed tokens survive restarts.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Google] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// OAuthConfig returns the oauth2 config used for both the initial consent
// flow and token refresh.
func (s *Service) OAuthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}

// GetTasksService creates a Tasks API client bound to the user's token.
func (s *Service) GetTasksService(ctx context.Context, token *oauth2.Token, onTokenRefresh TokenUpdateFunc) (*tasks.Service, error) {
	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrapped := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}
	client := oauth2.NewClient(ctx, wrapped)

	srv, err := tasks.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Tasks service: %w", err)
	}
	return srv, nil
}

// GetCalendarService creates a Calendar API client bound to the user's token.
func (s *Service) GetCalendarService(ctx context.Context, token *oauth2.Token, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrapped := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}
	client := oauth2.NewClient(ctx, wrapped)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}
	return srv, nil
}

// CreateTask inserts a new Google Task and returns its opaque id.
// Title casing is applied here, at creation time; upstream builders must not
// pre-transform titles they do not own.
func (s *Service) CreateTask(ctx context.Context, token *oauth2.Token, tasklistID string, payload TaskPayload, onTokenRefresh TokenUpdateFunc) (string, error) {
	srv, err := s.GetTasksService(ctx, token, onTokenRefresh)
	if err != nil {
		return "", err
	}

	task := &tasks.Task{
		Title: titleCase(payload.Title),
		Notes: payload.Notes,
	}
	// Google Tasks "due" expects an RFC3339 timestamp; end-of-day UTC.
	if payload.Due != "" {
		task.Due = payload.Due + "T23:59:00Z"
	}

	created, err := srv.Tasks.Insert(tasklistID, task).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create task: %w", err)
	}
	return created.Id, nil
}

// UpdateTask overwrites an existing Google Task. Returns false (with the
// error) when the update fails; the caller decides how to account for it.
func (s *Service) UpdateTask(ctx context.Context, token *oauth2.Token, tasklistID, taskID string, payload TaskPayload, onTokenRefresh TokenUpdateFunc) (bool, error) {
	srv, err := s.GetTasksService(ctx, token, onTokenRefresh)
	if err != nil {
		return false, err
	}

	task := &tasks.Task{
		Id:    taskID,
		Title: titleCase(payload.Title),
		Notes: payload.Notes,
	}
	if payload.Due != "" {
		task.Due = payload.Due + "T23:59:00Z"
	}

	if _, err := srv.Tasks.Update(tasklistID, taskID, task).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("unable to update task %s: %w", taskID, err)
	}
	return true, nil
}

// ListTasks returns the open tasks of a task list, used by the fuzzy
// title-match completion flow.
func (s *Service) ListTasks(ctx context.Context, token *oauth2.Token, tasklistID string, onTokenRefresh TokenUpdateFunc) ([]*tasks.Task, error) {
	srv, err := s.GetTasksService(ctx, token, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Tasks.List(tasklistID).ShowCompleted(false).MaxResults(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list tasks: %w", err)
	}
	return resp.Items, nil
}

// CompleteTask marks a task as completed.
func (s *Service) CompleteTask(ctx context.Context, token *oauth2.Token, tasklistID, taskID string, onTokenRefresh TokenUpdateFunc) error {
	srv, err := s.GetTasksService(ctx, token, onTokenRefresh)
	if err != nil {
		return err
	}

	task, err := srv.Tasks.Get(tasklistID, taskID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to fetch task %s: %w", taskID, err)
	}
	task.Status = "completed"
	if _, err := srv.Tasks.Update(tasklistID, taskID, task).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to complete task %s: %w", taskID, err)
	}
	return nil
}

// CreateEvent inserts a calendar event and returns its htmlLink.
func (s *Service) CreateEvent(ctx context.Context, token *oauth2.Token, calendarID string, payload EventPayload, onTokenRefresh TokenUpdateFunc) (string, error) {
	srv, err := s.GetCalendarService(ctx, token, onTokenRefresh)
	if err != nil {
		return "", err
	}

	event := &calendar.Event{
		Summary:     titleCase(payload.Title),
		Location:    payload.Location,
		Description: payload.Notes,
		Start:       &calendar.EventDateTime{DateTime: payload.StartTime},
		End:         &calendar.EventDateTime{DateTime: payload.EndTime},
	}

	created, err := srv.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create event: %w", err)
	}
	return created.HtmlLink, nil
}

var titleCaser = cases.Title(language.English)

func titleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}
