package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/access/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/domain/user"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

type GrantAccessCommand struct {
	UserID          uint   `json:"user_id" validate:"required"`
	MachineID       uint   `json:"machine_id" validate:"required"`
	DigitalKeyID    uint   `json:"digital_key_id" validate:"required"`
	PermissionLevel string `json:"permission_level" validate:"omitempty,oneof=read write execute admin"`
}

// GrantAccessUseCase creates an active permission for a user on a machine
// through a key bound to that machine.
type GrantAccessUseCase struct {
	permissions access.Repository
	users       user.Repository
	machines    machine.Repository
	keys        digitalkey.Repository
	binding     *access.BindingValidator
	locker      Locker
	mirror      mirror.Store
	logger      logger.Interface
}

func NewGrantAccessUseCase(
	permissions access.Repository,
	users user.Repository,
	machines machine.Repository,
	keys digitalkey.Repository,
	locker Locker,
	store mirror.Store,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		permissions: permissions,
		users:       users,
		machines:    machines,
		keys:        keys,
		binding:     access.NewBindingValidator(machines),
		locker:      locker,
		mirror:      store,
		logger:      logger,
	}
}

// Execute checks, in order: user exists, machine exists, key exists, key
// is bound to the machine, and no active permission exists for the pair.
// The last check and the insert run under the pair's grant lock. The
// mirror write happens after the insert and never fails the grant.
func (uc *GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (*dto.PermissionResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	u, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	m, err := uc.machines.GetByID(ctx, cmd.MachineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}

	key, err := uc.keys.GetByID(ctx, cmd.DigitalKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get digital key: %w", err)
	}
	if key == nil {
		return nil, digitalkey.ErrKeyNotFound
	}

	if err := uc.binding.ValidatePermissionBinding(key, m.ID()); err != nil {
		uc.logger.Warnw("grant rejected: key bound to another machine",
			"user_id", cmd.UserID,
			"machine_id", cmd.MachineID,
			"digital_key_id", cmd.DigitalKeyID,
			"key_machine_id", key.MachineID())
		return nil, err
	}

	permission, err := access.NewPermission(u.ID(), m.ID(), key.ID(), access.Level(cmd.PermissionLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	if err := uc.createExclusive(ctx, permission); err != nil {
		return nil, err
	}

	if !uc.mirror.Write(ctx, mirror.BucketPermissions, permission.ID(), "", mirror.NewPermissionUpload(permission)) {
		uc.logger.Warnw("permission granted but not mirrored", "id", permission.ID())
	}

	uc.logger.Infow("access granted",
		"id", permission.ID(),
		"user_id", permission.UserID(),
		"machine_id", permission.MachineID(),
		"level", permission.Level())

	return dto.ToPermissionResponse(permission), nil
}

func (uc *GrantAccessUseCase) createExclusive(ctx context.Context, permission *access.Permission) error {
	release, err := uc.locker.Acquire(ctx, grantLockKey(permission.UserID(), permission.MachineID()))
	if err != nil {
		uc.logger.Errorw("failed to acquire grant lock",
			"user_id", permission.UserID(),
			"machine_id", permission.MachineID(),
			"error", err)
		return fmt.Errorf("%w: %v", access.ErrGrantLockUnavailable, err)
	}
	defer release()

	existing, err := uc.permissions.FindActiveByUserMachine(ctx, permission.UserID(), permission.MachineID())
	if err != nil {
		return fmt.Errorf("failed to check existing permission: %w", err)
	}
	if existing != nil {
		return access.ErrDuplicateActiveGrant
	}

	if err := uc.permissions.Create(ctx, permission); err != nil {
		return fmt.Errorf("failed to save permission: %w", err)
	}
	return nil
}
