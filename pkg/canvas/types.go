package canvas

// Course is a Canvas course the user is actively enrolled in.
// Only the fields the bot touches are mapped; everything else in the
// Canvas payload is dropped at the fetch boundary.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Assignment is an immutable snapshot of a Canvas assignment as of one fetch.
// DueAt and UpdatedAt are the raw ISO-8601 strings Canvas returns; UpdatedAt
// is compared as a string for drift detection (Canvas timestamps are
// lexicographically ordered).
type Assignment struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	DueAt          *string  `json:"due_at"`
	UpdatedAt      string   `json:"updated_at"`
	HTMLURL        string   `json:"html_url"`
	PointsPossible *float64 `json:"points_possible"`
	CourseID       int64    `json:"course_id"`
}
