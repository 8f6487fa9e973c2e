package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	syncdomain "studysync-backend/internal/sync/domain"
	"studysync-backend/pkg/canvas"
	"studysync-backend/pkg/gcal"
)

// fakeMappingRepo is an in-memory MappingRepository.
type fakeMappingRepo struct {
	rows map[int64]syncdomain.AssignmentTaskMapping
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{rows: make(map[int64]syncdomain.AssignmentTaskMapping)}
}

func (r *fakeMappingRepo) Get(assignmentID int64) (*syncdomain.AssignmentTaskMapping, error) {
	row, ok := r.rows[assignmentID]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *fakeMappingRepo) Upsert(mapping *syncdomain.AssignmentTaskMapping) error {
	r.rows[mapping.AssignmentID] = *mapping
	return nil
}

// fakeTaskProvider records calls and can be told to fail for specific titles.
type fakeTaskProvider struct {
	nextID      int
	createCalls []gcal.TaskPayload
	updateCalls map[string]gcal.TaskPayload
	failCreate  map[string]bool // keyed by payload title
	failUpdate  map[string]bool // keyed by task id
}

func newFakeTaskProvider() *fakeTaskProvider {
	return &fakeTaskProvider{
		updateCalls: make(map[string]gcal.TaskPayload),
		failCreate:  make(map[string]bool),
		failUpdate:  make(map[string]bool),
	}
}

func (p *fakeTaskProvider) CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error) {
	if p.failCreate[payload.Title] {
		return "", errors.New("create failed")
	}
	p.nextID++
	p.createCalls = append(p.createCalls, payload)
	return fmt.Sprintf("gtask-%d", p.nextID), nil
}

func (p *fakeTaskProvider) UpdateTask(ctx context.Context, taskID string, payload gcal.TaskPayload) (bool, error) {
	if p.failUpdate[taskID] {
		return false, errors.New("update failed")
	}
	p.updateCalls[taskID] = payload
	return true, nil
}

// fakeFetcher serves a fixed set of courses and assignments.
type fakeFetcher struct {
	courses     []canvas.Course
	assignments map[int64][]canvas.Assignment
	failCourses map[int64]bool
	listErr     error
}

func (f *fakeFetcher) ListActiveCourses(ctx context.Context) ([]canvas.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.courses, nil
}

func (f *fakeFetcher) ListCourseAssignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error) {
	if f.failCourses[courseID] {
		return nil, errors.New("fetch failed")
	}
	return f.assignments[courseID], nil
}

func strPtr(s string) *string { return &s }

func fixture() (*fakeFetcher, *fakeTaskProvider, *fakeMappingRepo) {
	fetcher := &fakeFetcher{
		courses: []canvas.Course{
			{ID: 1, Name: "Calculus", CourseCode: "MATH 101"},
			{ID: 2, Name: "Physics", CourseCode: "PHYS 201"},
		},
		assignments: map[int64][]canvas.Assignment{
			1: {
				{ID: 11, Name: "Problem Set 1", DueAt: strPtr("2099-09-10T23:59:00Z"), UpdatedAt: "2026-09-01T00:00:00Z", CourseID: 1},
				{ID: 12, Name: "Problem Set 2", DueAt: strPtr("2099-09-17T23:59:00Z"), UpdatedAt: "2026-09-02T00:00:00Z", CourseID: 1},
			},
			2: {
				{ID: 21, Name: "Lab Report", DueAt: strPtr("2099-09-12T23:59:00Z"), UpdatedAt: "2026-09-03T00:00:00Z", CourseID: 2},
			},
		},
		failCourses: make(map[int64]bool),
	}
	return fetcher, newFakeTaskProvider(), newFakeMappingRepo()
}

func TestFirstSyncCreatesAllAssignments(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)

	summary, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("SyncAssignments: %v", err)
	}
	want := syncdomain.SyncSummary{Created: 3}
	if *summary != want {
		t.Fatalf("summary = %+v, want %+v", *summary, want)
	}
	if len(tasks.createCalls) != 3 {
		t.Fatalf("expected 3 create calls, got %d", len(tasks.createCalls))
	}

	// The mapping row must carry the remote id returned by the create call.
	row, _ := repo.Get(11)
	if row == nil {
		t.Fatal("mapping row missing for assignment 11")
	}
	if row.GoogleTaskID != "gtask-1" {
		t.Fatalf("expected gtask-1, got %q", row.GoogleTaskID)
	}
	if row.CanvasUpdatedAt != "2026-09-01T00:00:00Z" || row.CanvasDueDate != "2099-09-10" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestSecondSyncIsIdempotent(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)

	first, _ := engine.SyncAssignments(context.Background())
	second, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("SyncAssignments: %v", err)
	}

	if second.Created != 0 || second.Updated != 0 {
		t.Fatalf("second run mutated: %+v", *second)
	}
	if second.Skipped != first.Created+first.Updated {
		t.Fatalf("expected skipped=%d, got %d", first.Created+first.Updated, second.Skipped)
	}
	if len(tasks.createCalls) != 3 {
		t.Fatalf("second run issued extra create calls: %d", len(tasks.createCalls))
	}
	if len(tasks.updateCalls) != 0 {
		t.Fatalf("second run issued update calls: %d", len(tasks.updateCalls))
	}
}

func TestDriftTriggersExactlyOneUpdate(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)
	engine.SyncAssignments(context.Background())

	// Bump updated_at upstream for one assignment.
	fetcher.assignments[1][0].UpdatedAt = "2026-09-05T00:00:00Z"

	summary, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("SyncAssignments: %v", err)
	}
	if summary.Updated != 1 || summary.Skipped != 2 || summary.Created != 0 {
		t.Fatalf("summary = %+v", *summary)
	}
	if len(tasks.updateCalls) != 1 {
		t.Fatalf("expected exactly 1 update call, got %d", len(tasks.updateCalls))
	}

	row, _ := repo.Get(11)
	if row.CanvasUpdatedAt != "2026-09-05T00:00:00Z" {
		t.Fatalf("mapping not advanced: %+v", row)
	}
}

func TestDueDateDriftAloneTriggersUpdate(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)
	engine.SyncAssignments(context.Background())

	// Same updated_at, new due date.
	fetcher.assignments[2][0].DueAt = strPtr("2099-09-20T23:59:00Z")

	summary, _ := engine.SyncAssignments(context.Background())
	if summary.Updated != 1 {
		t.Fatalf("expected 1 update, got %+v", *summary)
	}
	if len(tasks.updateCalls) != 1 {
		t.Fatalf("expected 1 update call, got %d", len(tasks.updateCalls))
	}
	row, _ := repo.Get(21)
	if row.CanvasDueDate != "2099-09-20" {
		t.Fatalf("due date not advanced: %+v", row)
	}
}

func TestFailedUpdateCountsErrorAndKeepsMapping(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)
	engine.SyncAssignments(context.Background())

	fetcher.assignments[1][0].UpdatedAt = "2026-09-05T00:00:00Z"
	tasks.failUpdate["gtask-1"] = true

	summary, _ := engine.SyncAssignments(context.Background())
	if summary.Errors != 1 || summary.Updated != 0 {
		t.Fatalf("summary = %+v", *summary)
	}

	// The mapping must keep the old snapshot so the next run retries.
	row, _ := repo.Get(11)
	if row.CanvasUpdatedAt != "2026-09-01T00:00:00Z" {
		t.Fatalf("mapping advanced despite failed update: %+v", row)
	}
}

func TestPerItemIsolation(t *testing.T) {
	fetcher, tasks, repo := fixture()
	engine := NewSyncUsecase(fetcher, tasks, repo)

	// One create fails; the rest of the course and the next course must
	// still be processed.
	tasks.failCreate["Problem Set 1"] = true

	summary, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("SyncAssignments: %v", err)
	}
	if summary.Errors != 1 || summary.Created != 2 {
		t.Fatalf("summary = %+v", *summary)
	}
	if row, _ := repo.Get(12); row == nil {
		t.Fatal("assignment after the failed one was not processed")
	}
	if row, _ := repo.Get(21); row == nil {
		t.Fatal("next course was not processed")
	}
}

func TestPerCourseIsolation(t *testing.T) {
	fetcher, _, repo := fixture()
	tasks := newFakeTaskProvider()
	engine := NewSyncUsecase(fetcher, tasks, repo)

	fetcher.failCourses[1] = true

	summary, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("SyncAssignments: %v", err)
	}
	if summary.Errors != 1 || summary.Created != 1 {
		t.Fatalf("summary = %+v", *summary)
	}
	if row, _ := repo.Get(21); row == nil {
		t.Fatal("second course was not processed after first course failed")
	}
}

func TestCourseListingFailureReturnsErrorSummary(t *testing.T) {
	fetcher, tasks, repo := fixture()
	fetcher.listErr = errors.New("canvas down")
	engine := NewSyncUsecase(fetcher, tasks, repo)

	summary, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("listing failure should not propagate, got %v", err)
	}
	if summary.Errors != 1 || summary.Created != 0 {
		t.Fatalf("summary = %+v", *summary)
	}
}

func TestPastDueAssignmentsAreSkippedEntirely(t *testing.T) {
	fetcher, tasks, repo := fixture()
	fetcher.assignments[1] = append(fetcher.assignments[1], canvas.Assignment{
		ID: 13, Name: "Old Homework", DueAt: strPtr("2020-01-01T00:00:00Z"), UpdatedAt: "2020-01-01T00:00:00Z", CourseID: 1,
	})
	engine := NewSyncUsecase(fetcher, tasks, repo)

	summary, _ := engine.SyncAssignments(context.Background())
	if summary.Created != 3 {
		t.Fatalf("expected past-due assignment filtered, got %+v", *summary)
	}
	if row, _ := repo.Get(13); row != nil {
		t.Fatal("past-due assignment must not be synced")
	}
}

// blockingTaskProvider parks the first create call until released, keeping a
// run in flight long enough for a second one to arrive.
type blockingTaskProvider struct {
	*fakeTaskProvider
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *blockingTaskProvider) CreateTask(ctx context.Context, payload gcal.TaskPayload) (string, error) {
	p.once.Do(func() {
		close(p.started)
		<-p.release
	})
	return p.fakeTaskProvider.CreateTask(ctx, payload)
}

func TestOverlappingSyncRunIsRejected(t *testing.T) {
	fetcher, tasks, repo := fixture()
	blocking := &blockingTaskProvider{
		fakeTaskProvider: tasks,
		started:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	engine := NewSyncUsecase(fetcher, blocking, repo)

	done := make(chan *syncdomain.SyncSummary, 1)
	go func() {
		summary, err := engine.SyncAssignments(context.Background())
		if err != nil {
			t.Errorf("first run: %v", err)
		}
		done <- summary
	}()

	// A second run while the first is mid-create must be rejected, not
	// interleaved: no duplicate create calls, no competing mapping writes.
	<-blocking.started
	if _, err := engine.SyncAssignments(context.Background()); !errors.Is(err, syncdomain.ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}
	close(blocking.release)

	first := <-done
	if first == nil || first.Created != 3 {
		t.Fatalf("first run summary = %+v, want created=3", first)
	}
	if len(tasks.createCalls) != 3 {
		t.Fatalf("expected 3 create calls total, got %d", len(tasks.createCalls))
	}

	// The lock is released once the run finishes.
	after, err := engine.SyncAssignments(context.Background())
	if err != nil {
		t.Fatalf("follow-up run: %v", err)
	}
	if after.Skipped != 3 {
		t.Fatalf("follow-up run summary = %+v, want skipped=3", *after)
	}
}
