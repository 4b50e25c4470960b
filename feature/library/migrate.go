package library

import (
	"fmt"
	"sort"

	"library-ingest/core/database"
	"library-ingest/feature/library/models"

	"gorm.io/gorm"
)

// Migrate creates the authors, books and library tables if they are missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Author{}, &models.Book{}, &models.LibraryEntry{}); err != nil {
		return fmt.Errorf("failed to migrate library schema: %w", err)
	}
	return nil
}

// SchemaReport lists, per table, the columns the ingester needs but the
// database lacks. A missing table reports all of its columns.
type SchemaReport struct {
	Matched bool                `json:"matched"`
	Missing map[string][]string `json:"missing,omitempty"`
}

// CheckSchema compares the live schema against the columns the ingester uses.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	tables := make([]string, 0, len(models.Columns))
	for table := range models.Columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	report := &SchemaReport{Matched: true, Missing: map[string][]string{}}
	for _, table := range tables {
		missing, err := database.MissingColumns(db, table, models.Columns[table])
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			report.Matched = false
			report.Missing[table] = missing
		}
	}
	return report, nil
}
