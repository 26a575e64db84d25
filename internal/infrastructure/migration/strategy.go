package migration

import (
	"fmt"

	"gorm.io/gorm"

	"keygate/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.WithComponent("migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			s.logger.Errorw("auto migrate failed", "model", fmt.Sprintf("%T", model), "error", err)
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	s.logger.Infow("auto migrate completed", "models_count", len(models))
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
