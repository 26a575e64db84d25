package usecases

import (
	"context"
	"errors"
	"fmt"

	"keygate/internal/domain/access"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

type DeletePermissionUseCase struct {
	permissions access.Repository
	mirror      mirror.Store
	logger      logger.Interface
}

func NewDeletePermissionUseCase(permissions access.Repository, store mirror.Store, logger logger.Interface) *DeletePermissionUseCase {
	return &DeletePermissionUseCase{
		permissions: permissions,
		mirror:      store,
		logger:      logger,
	}
}

// Execute hard-deletes the permission, then drops its snapshot. A snapshot
// that is missing or cannot be removed is only logged.
func (uc *DeletePermissionUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.permissions.Delete(ctx, id); err != nil {
		if errors.Is(err, access.ErrPermissionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	if !uc.mirror.Delete(ctx, mirror.BucketPermissions, id, "") {
		uc.logger.Warnw("permission deleted but snapshot not removed", "id", id)
	}

	uc.logger.Infow("permission deleted", "id", id)
	return nil
}
