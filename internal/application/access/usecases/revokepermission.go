package usecases

import (
	"context"
	"fmt"
	"time"

	"keygate/internal/application/access/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

// RevokePermissionUseCase deactivates a permission and records when.
type RevokePermissionUseCase struct {
	permissions access.Repository
	mirror      mirror.Store
	idempotent  bool
	now         func() time.Time
	logger      logger.Interface
}

// NewRevokePermissionUseCase creates the use case. With idempotent set, an
// already revoked permission is returned unchanged instead of having its
// revocation time re-stamped.
func NewRevokePermissionUseCase(permissions access.Repository, store mirror.Store, idempotent bool, logger logger.Interface) *RevokePermissionUseCase {
	return &RevokePermissionUseCase{
		permissions: permissions,
		mirror:      store,
		idempotent:  idempotent,
		now:         time.Now,
		logger:      logger,
	}
}

func (uc *RevokePermissionUseCase) Execute(ctx context.Context, id uint) (*dto.PermissionResponse, error) {
	permission, err := uc.permissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	if permission == nil {
		return nil, access.ErrPermissionNotFound
	}

	if uc.idempotent && permission.IsRevoked() && !permission.IsActive() {
		uc.logger.Debugw("permission already revoked", "id", id)
		return dto.ToPermissionResponse(permission), nil
	}

	permission.Revoke(uc.now())
	if err := uc.permissions.Update(ctx, permission); err != nil {
		return nil, fmt.Errorf("failed to revoke permission: %w", err)
	}

	if !uc.mirror.Write(ctx, mirror.BucketPermissions, permission.ID(), "", mirror.NewPermissionUpdate(permission)) {
		uc.logger.Warnw("permission revoked but not mirrored", "id", permission.ID())
	}

	uc.logger.Infow("permission revoked",
		"id", permission.ID(),
		"user_id", permission.UserID(),
		"machine_id", permission.MachineID())

	return dto.ToPermissionResponse(permission), nil
}

// RevokeUserMachineAccessUseCase revokes by (user, machine) pair. It
// prefers the active permission and otherwise takes the newest one. The
// mirror is not updated on this path.
type RevokeUserMachineAccessUseCase struct {
	permissions access.Repository
	now         func() time.Time
	logger      logger.Interface
}

func NewRevokeUserMachineAccessUseCase(permissions access.Repository, logger logger.Interface) *RevokeUserMachineAccessUseCase {
	return &RevokeUserMachineAccessUseCase{
		permissions: permissions,
		now:         time.Now,
		logger:      logger,
	}
}

func (uc *RevokeUserMachineAccessUseCase) Execute(ctx context.Context, userID, machineID uint) (*dto.PermissionResponse, error) {
	permission, err := uc.permissions.FindActiveByUserMachine(ctx, userID, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	if permission == nil {
		permission, err = uc.permissions.FindLatestByUserMachine(ctx, userID, machineID)
		if err != nil {
			return nil, fmt.Errorf("failed to find permission: %w", err)
		}
	}
	if permission == nil {
		return nil, access.ErrPermissionNotFound
	}

	permission.Revoke(uc.now())
	if err := uc.permissions.Update(ctx, permission); err != nil {
		return nil, fmt.Errorf("failed to revoke permission: %w", err)
	}

	uc.logger.Infow("user machine access revoked",
		"id", permission.ID(),
		"user_id", userID,
		"machine_id", machineID)

	return dto.ToPermissionResponse(permission), nil
}
