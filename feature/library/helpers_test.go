package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"library-ingest/core/database"
	"library-ingest/feature/library/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// openTestDB returns a migrated in-memory database private to the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:library_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: name})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, Migrate(db))
	return db
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type counts struct {
	Authors, Books, Library int64
}

func countRows(t *testing.T, db *gorm.DB) counts {
	t.Helper()
	var c counts
	require.NoError(t, db.Model(&models.Author{}).Count(&c.Authors).Error)
	require.NoError(t, db.Model(&models.Book{}).Count(&c.Books).Error)
	require.NoError(t, db.Model(&models.LibraryEntry{}).Count(&c.Library).Error)
	return c
}
