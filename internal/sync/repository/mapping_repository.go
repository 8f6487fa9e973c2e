package repository

import (
	"time"

	syncdomain "studysync-backend/internal/sync/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mappingRepository implements MappingRepository interface
type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new instance of mappingRepository
func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{
		db: db,
	}
}

// Get returns the mapping row for one assignment, or nil when absent.
func (r *mappingRepository) Get(assignmentID int64) (*syncdomain.AssignmentTaskMapping, error) {
	var mapping syncdomain.AssignmentTaskMapping
	err := r.db.Where("assignment_id = ?", assignmentID).First(&mapping).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

// Upsert inserts or replaces the mapping keyed by assignment id.
func (r *mappingRepository) Upsert(mapping *syncdomain.AssignmentTaskMapping) error {
	now := time.Now()
	mapping.LastSyncedAt = now
	mapping.UpdatedAt = now
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assignment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"course_id",
			"google_task_id",
			"canvas_updated_at",
			"canvas_due_date",
			"last_synced_at",
			"updated_at",
		}),
	}).Create(mapping).Error
}
