package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"
)

// ListActiveCourses returns every course the user is actively enrolled in,
// following pagination to the end.
func (c *Client) ListActiveCourses(ctx context.Context) ([]Course, error) {
	params := url.Values{}
	params.Set("enrollment_state", "active")
	params.Set("per_page", "100")

	raw, err := c.getPaginated(ctx, "/api/v1/courses", params)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]Course, 0, len(raw))
	for _, r := range raw {
		var course Course
		if err := json.Unmarshal(r, &course); err != nil {
			log.Printf("[Canvas] Skipping unparseable course object: %v", err)
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// ListCourseAssignments returns all assignments of one course, following
// pagination to the end.
func (c *Client) ListCourseAssignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	params := url.Values{}
	params.Set("per_page", "100")

	path := fmt.Sprintf("/api/v1/courses/%d/assignments", courseID)
	raw, err := c.getPaginated(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for course %d: %w", courseID, err)
	}

	assignments := make([]Assignment, 0, len(raw))
	for _, r := range raw {
		var a Assignment
		if err := json.Unmarshal(r, &a); err != nil {
			log.Printf("[Canvas] Skipping unparseable assignment object: %v", err)
			continue
		}
		if a.CourseID == 0 {
			a.CourseID = courseID
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// FilterDueAssignments narrows a list to assignments worth syncing:
// assignments with no due date are dropped, assignments due strictly before
// now (UTC) are dropped, and assignments whose due date fails to parse are
// KEPT. Fail-open is intentional: an ambiguous timestamp should never
// silently drop an assignment.
func FilterDueAssignments(assignments []Assignment, now time.Time) []Assignment {
	now = now.UTC()
	out := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.DueAt == nil || *a.DueAt == "" {
			continue
		}
		due, err := time.Parse(time.RFC3339, *a.DueAt)
		if err != nil {
			log.Printf("[Canvas] Keeping assignment %d with unparseable due_at %q", a.ID, *a.DueAt)
			out = append(out, a)
			continue
		}
		if due.UTC().Before(now) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// DueDate returns the date-only portion (YYYY-MM-DD, UTC) of an assignment's
// due timestamp, or "" when the assignment has no parseable due date.
func (a Assignment) DueDate() string {
	if a.DueAt == nil || *a.DueAt == "" {
		return ""
	}
	due, err := time.Parse(time.RFC3339, *a.DueAt)
	if err != nil {
		return ""
	}
	return due.UTC().Format("2006-01-02")
}
