package http

import (
	"gorm.io/gorm"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/user"
	"keygate/internal/infrastructure/repository"
	"keygate/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo       user.Repository
	machineRepo    machine.Repository
	digitalKeyRepo digitalkey.Repository
	permissionRepo access.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db, log),
		machineRepo:    repository.NewMachineRepository(db, log),
		digitalKeyRepo: repository.NewDigitalKeyRepository(db, log),
		permissionRepo: repository.NewPermissionRepository(db, log),
	}
}
