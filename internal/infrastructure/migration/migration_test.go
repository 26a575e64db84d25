package migration

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"keygate/internal/infrastructure/database"
	"keygate/internal/shared/config"
	"keygate/internal/shared/constants"
)

func TestManager_MigratesAllTables(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "migrate.db"),
	})
	require.NoError(t, err)

	require.NoError(t, NewManager().Migrate(db))

	for _, table := range []string{
		constants.TableUsers,
		constants.TableMachines,
		constants.TableDigitalKeys,
		constants.TablePermissions,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// A second run is a no-op.
	require.NoError(t, NewManager().Migrate(db))
}

type failingStrategy struct{}

func (failingStrategy) Migrate(*gorm.DB, ...interface{}) error { return errors.New("boom") }
func (failingStrategy) GetName() string                        { return "failing" }

func TestManager_WrapsStrategyError(t *testing.T) {
	err := NewManagerWithStrategy(failingStrategy{}).Migrate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy failing")
}
