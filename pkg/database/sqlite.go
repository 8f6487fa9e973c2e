package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens (or creates) the local SQLite database that backs
// the assignment/task mapping table. A failure here is fatal for any sync run:
// without the mapping table there is no dedupe and no meaningful sync.
func NewSQLiteConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sync store unavailable at %s: %w", path, err)
	}
	return db, nil
}
