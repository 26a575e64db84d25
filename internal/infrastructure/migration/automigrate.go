package migration

import (
	"keygate/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model owned by keygate.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.MachineModel{},
		&models.DigitalKeyModel{},
		&models.PermissionModel{},
	}
}
