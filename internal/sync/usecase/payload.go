package usecase

import (
	"fmt"
	"strings"

	"studysync-backend/pkg/canvas"
	"studysync-backend/pkg/gcal"
)

// BuildTaskNotes composes the notes field of a Google Task from an assignment
// and its course. Line order is fixed and each line is conditional on field
// presence, so the output is deterministic and suitable for a future
// content-hash dedupe without changing this contract.
func BuildTaskNotes(assignment canvas.Assignment, course canvas.Course) string {
	var b strings.Builder
	b.WriteString("Canvas Assignment\n")
	if course.CourseCode != "" {
		fmt.Fprintf(&b, "Course: %s\n", course.CourseCode)
	}
	courseName := course.Name
	if courseName == "" {
		courseName = "Unknown Course"
	}
	fmt.Fprintf(&b, "Course: %s\n", courseName)
	if assignment.ID != 0 {
		fmt.Fprintf(&b, "Assignment ID: %d\n", assignment.ID)
	}
	if assignment.HTMLURL != "" {
		fmt.Fprintf(&b, "URL: %s", assignment.HTMLURL)
	}
	return b.String()
}

// BuildTaskPayload is the pure assignment+course -> task payload transform.
// The title is the trimmed assignment name; title casing is owned by the
// Google layer at creation time, so it is deliberately not applied here.
func BuildTaskPayload(assignment canvas.Assignment, course canvas.Course) gcal.TaskPayload {
	title := strings.TrimSpace(assignment.Name)
	if title == "" {
		title = "Untitled"
	}
	return gcal.TaskPayload{
		Title: title,
		Due:   assignment.DueDate(),
		Notes: BuildTaskNotes(assignment, course),
	}
}
