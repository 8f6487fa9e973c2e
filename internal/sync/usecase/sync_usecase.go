package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	syncdomain "studysync-backend/internal/sync/domain"
	"studysync-backend/internal/sync/repository"
	"studysync-backend/pkg/canvas"
)

// syncUsecase implements SyncUsecase. runLock admits one run at a time: the
// scheduler, the bot and the HTTP trigger all share this instance, and a
// request that arrives mid-run is rejected with ErrSyncInProgress instead of
// interleaving against the same mapping store.
type syncUsecase struct {
	fetcher     CourseFetcher
	tasks       TaskProvider
	mappingRepo repository.MappingRepository
	runLock     sync.Mutex
}

// NewSyncUsecase creates the reconciliation engine.
func NewSyncUsecase(fetcher CourseFetcher, tasks TaskProvider, mappingRepo repository.MappingRepository) SyncUsecase {
	return &syncUsecase{
		fetcher:     fetcher,
		tasks:       tasks,
		mappingRepo: mappingRepo,
	}
}

// SyncAssignments walks every active course and reconciles each due
// assignment against the mapping table: create when never seen, update on
// drift, skip otherwise. Failures are isolated at the granularity they occur
// (one assignment, one course, or the course listing itself) and converted
// into the errors counter; they never abort the rest of the run.
func (u *syncUsecase) SyncAssignments(ctx context.Context) (*syncdomain.SyncSummary, error) {
	if !u.runLock.TryLock() {
		return nil, syncdomain.ErrSyncInProgress
	}
	defer u.runLock.Unlock()

	summary := &syncdomain.SyncSummary{}

	log.Println("[CanvasSync] Fetching Canvas courses...")
	courses, err := u.fetcher.ListActiveCourses(ctx)
	if err != nil {
		log.Printf("[CanvasSync] Failed to list courses: %v", err)
		summary.Errors++
		return summary, nil
	}
	log.Printf("[CanvasSync] Found %d active courses", len(courses))

	for _, course := range courses {
		u.syncCourse(ctx, course, summary)
	}

	log.Printf("[CanvasSync] Done: created=%d updated=%d skipped=%d errors=%d",
		summary.Created, summary.Updated, summary.Skipped, summary.Errors)
	return summary, nil
}

// syncCourse reconciles one course. A fetch failure counts as one error and
// leaves the remaining courses untouched.
func (u *syncUsecase) syncCourse(ctx context.Context, course canvas.Course, summary *syncdomain.SyncSummary) {
	log.Printf("[CanvasSync] Syncing %s...", course.Name)

	assignments, err := u.fetcher.ListCourseAssignments(ctx, course.ID)
	if err != nil {
		log.Printf("[CanvasSync] Failed to fetch assignments for %s: %v", course.Name, err)
		summary.Errors++
		return
	}

	due := canvas.FilterDueAssignments(assignments, time.Now())
	log.Printf("[CanvasSync] Found %d assignments with due dates in %s", len(due), course.Name)

	for _, assignment := range due {
		if err := u.syncAssignment(ctx, assignment, course, summary); err != nil {
			log.Printf("[CanvasSync] Failed to sync assignment %d (%s): %v",
				assignment.ID, assignment.Name, err)
			summary.Errors++
		}
	}
}

// syncAssignment applies the per-item decision logic:
//
//	no mapping row        -> create remote task, insert row
//	updated_at or derived -> update remote task, replace row
//	due date drifted
//	otherwise             -> skip
func (u *syncUsecase) syncAssignment(ctx context.Context, assignment canvas.Assignment, course canvas.Course, summary *syncdomain.SyncSummary) error {
	mapping, err := u.mappingRepo.Get(assignment.ID)
	if err != nil {
		return err
	}

	dueDate := assignment.DueDate()

	if mapping == nil {
		// Never synced: create.
		payload := BuildTaskPayload(assignment, course)
		taskID, err := u.tasks.CreateTask(ctx, payload)
		if err != nil {
			return err
		}
		if err := u.mappingRepo.Upsert(&syncdomain.AssignmentTaskMapping{
			AssignmentID:    assignment.ID,
			CourseID:        course.ID,
			GoogleTaskID:    taskID,
			CanvasUpdatedAt: assignment.UpdatedAt,
			CanvasDueDate:   dueDate,
		}); err != nil {
			return err
		}
		summary.Created++
		log.Printf("[CanvasSync] Created: %s", assignment.Name)
		return nil
	}

	drift := assignment.UpdatedAt != mapping.CanvasUpdatedAt || dueDate != mapping.CanvasDueDate
	if !drift {
		summary.Skipped++
		return nil
	}

	payload := BuildTaskPayload(assignment, course)
	ok, err := u.tasks.UpdateTask(ctx, mapping.GoogleTaskID, payload)
	if err != nil || !ok {
		if err != nil {
			log.Printf("[CanvasSync] Update failed for task %s: %v", mapping.GoogleTaskID, err)
		}
		summary.Errors++
		return nil
	}

	mapping.CourseID = course.ID
	mapping.CanvasUpdatedAt = assignment.UpdatedAt
	mapping.CanvasDueDate = dueDate
	if err := u.mappingRepo.Upsert(mapping); err != nil {
		return err
	}
	summary.Updated++
	log.Printf("[CanvasSync] Updated: %s", assignment.Name)
	return nil
}
