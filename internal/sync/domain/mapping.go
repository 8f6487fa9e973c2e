package domain

import (
	"errors"
	"time"
)

// ErrSyncInProgress is returned when a sync run is requested while another
// run is still executing. The engine never overlaps runs against the same
// mapping store; the caller should report it and try again later.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// AssignmentTaskMapping is the durable linkage between one Canvas assignment
// and the Google Task created for it. A row exists iff a remote task has been
// successfully created or updated for that assignment at least once; absence
// of a row is the sole "never synced" signal and triggers creation.
//
// CanvasUpdatedAt and CanvasDueDate are the last-seen upstream values and
// together form the drift signal. CanvasUpdatedAt is compared as a string:
// Canvas timestamps are ISO-8601 and lexicographically ordered, so string
// inequality is a sufficient change test.
//
// Rows are never deleted by the sync engine (assignments removed upstream
// keep their task; no compensating action).
type AssignmentTaskMapping struct {
	AssignmentID    int64     `json:"assignment_id" gorm:"primaryKey;autoIncrement:false"`
	CourseID        int64     `json:"course_id" gorm:"not null"`
	GoogleTaskID    string    `json:"google_task_id" gorm:"not null"`
	CanvasUpdatedAt string    `json:"canvas_updated_at"`
	CanvasDueDate   string    `json:"canvas_due_date"` // YYYY-MM-DD or ""
	LastSyncedAt    time.Time `json:"last_synced_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for AssignmentTaskMapping
func (AssignmentTaskMapping) TableName() string {
	return "assignment_task_mappings"
}

// SyncSummary is the terminal tally of one sync run. It is accumulated
// in-run and returned to the caller; no partial results are exposed.
type SyncSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
