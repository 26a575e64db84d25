// Package testutil provides fixtures shared by repository, use case and
// handler tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"keygate/internal/infrastructure/database"
	"keygate/internal/infrastructure/migration"
	"keygate/internal/shared/config"
)

// NewTestDB opens a migrated SQLite database in a temp directory. The
// connection is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "keygate_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, migration.NewManager().Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
