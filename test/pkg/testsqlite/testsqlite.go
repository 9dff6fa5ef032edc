// Package testsqlite opens throwaway sqlite-backed stores for unit tests.
package testsqlite

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database"
	"github.com/opsight/opsight/pkg/database/models"
)

// NewTestDB returns a migrated, shift-seeded store in the test's temp
// directory. The connection is closed when the test finishes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, sqlDB, err := database.NewGormConn(&database.DatabaseConfig{
		URL:     filepath.Join(t.TempDir(), "opsight.db"),
		Dialect: database.SqliteDialect,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		database.CloseGorm(sqlDB)
	})

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := models.SeedShiftDefinitions(db); err != nil {
		t.Fatalf("failed to seed shift definitions: %v", err)
	}
	return db
}
