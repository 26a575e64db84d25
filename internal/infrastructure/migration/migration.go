package migration

import (
	"fmt"

	"gorm.io/gorm"

	"keygate/internal/shared/logger"
)

// Manager handles database migrations with a pluggable strategy
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager. Every environment uses gorm
// AutoMigrate; the schema is small and additive.
func NewManager() *Manager {
	return NewManagerWithStrategy(NewGormAutoMigrateStrategy())
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy. With no models it
// migrates AutoMigrateModels.
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
