package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/access/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// UpdatePermissionCommand changes the level and/or the active flag. Nil
// fields are left alone.
type UpdatePermissionCommand struct {
	ID              uint    `json:"id" validate:"required"`
	PermissionLevel *string `json:"permission_level" validate:"omitempty,oneof=read write execute admin"`
	IsActive        *bool   `json:"is_active"`
}

type UpdatePermissionUseCase struct {
	permissions access.Repository
	mirror      mirror.Store
	logger      logger.Interface
}

func NewUpdatePermissionUseCase(permissions access.Repository, store mirror.Store, logger logger.Interface) *UpdatePermissionUseCase {
	return &UpdatePermissionUseCase{
		permissions: permissions,
		mirror:      store,
		logger:      logger,
	}
}

// Execute never touches revoked_at: deactivating through an update is not
// a revocation.
func (uc *UpdatePermissionUseCase) Execute(ctx context.Context, cmd UpdatePermissionCommand) (*dto.PermissionResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	permission, err := uc.permissions.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	if permission == nil {
		return nil, access.ErrPermissionNotFound
	}

	if cmd.PermissionLevel != nil {
		if err := permission.ChangeLevel(access.Level(*cmd.PermissionLevel)); err != nil {
			return nil, err
		}
	}
	if cmd.IsActive != nil {
		permission.SetActive(*cmd.IsActive)
	}

	if err := uc.permissions.Update(ctx, permission); err != nil {
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}

	if !uc.mirror.Write(ctx, mirror.BucketPermissions, permission.ID(), "", mirror.NewPermissionUpdate(permission)) {
		uc.logger.Warnw("permission updated but not mirrored", "id", permission.ID())
	}

	uc.logger.Infow("permission updated",
		"id", permission.ID(),
		"level", permission.Level(),
		"is_active", permission.IsActive())

	return dto.ToPermissionResponse(permission), nil
}
