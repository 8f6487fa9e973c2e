package repository

import syncdomain "studysync-backend/internal/sync/domain"

// MappingRepository defines the interface for the assignment/task mapping
// table. A single sync run at a time is assumed; concurrent writers against
// the same store are disallowed by contract, not defended against.
type MappingRepository interface {
	// Get returns the mapping for an assignment, or nil when the assignment
	// has never been synced.
	Get(assignmentID int64) (*syncdomain.AssignmentTaskMapping, error)
	// Upsert inserts or replaces the mapping keyed by assignment id.
	Upsert(mapping *syncdomain.AssignmentTaskMapping) error
}
