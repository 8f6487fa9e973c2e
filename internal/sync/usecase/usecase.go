package usecase

import (
	"context"

	syncdomain "studysync-backend/internal/sync/domain"
	"studysync-backend/pkg/canvas"
	"studysync-backend/pkg/gcal"
)

// SyncUsecase defines the interface for the Canvas -> Google Tasks
// reconciliation engine.
type SyncUsecase interface {
	// SyncAssignments runs one full sync across all active courses and
	// returns the outcome tally. The only errors it returns are a mapping
	// store failure and ErrSyncInProgress when another run is still
	// executing; every per-course and per-assignment failure is counted in
	// the summary instead.
	SyncAssignments(ctx context.Context) (*syncdomain.SyncSummary, error)
}

// CourseFetcher is the narrow slice of the Canvas client the engine consumes.
type CourseFetcher interface {
	ListActiveCourses(ctx context.Context) ([]canvas.Course, error)
	ListCourseAssignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error)
}

// TaskProvider is the narrow slice of the Google Tasks surface the engine
// consumes. CreateTask returns the opaque remote task id; UpdateTask reports
// success as a bool so a failed update can be tallied without aborting.
type TaskProvider interface {
	CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error)
	UpdateTask(ctx context.Context, taskID string, payload gcal.TaskPayload) (bool, error)
}
