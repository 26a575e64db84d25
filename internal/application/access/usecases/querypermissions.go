package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/access/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/user"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

type GetPermissionUseCase struct {
	permissions access.Repository
	logger      logger.Interface
}

func NewGetPermissionUseCase(permissions access.Repository, logger logger.Interface) *GetPermissionUseCase {
	return &GetPermissionUseCase{permissions: permissions, logger: logger}
}

func (uc *GetPermissionUseCase) Execute(ctx context.Context, id uint) (*dto.PermissionResponse, error) {
	permission, err := uc.permissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	if permission == nil {
		return nil, access.ErrPermissionNotFound
	}
	return dto.ToPermissionResponse(permission), nil
}

type ListPermissionsUseCase struct {
	permissions access.Repository
	logger      logger.Interface
}

func NewListPermissionsUseCase(permissions access.Repository, logger logger.Interface) *ListPermissionsUseCase {
	return &ListPermissionsUseCase{permissions: permissions, logger: logger}
}

// Execute returns one page of every permission regardless of state.
func (uc *ListPermissionsUseCase) Execute(ctx context.Context, page, pageSize int) (*dto.ListPermissionsResponse, error) {
	p := utils.ValidatePagination(page, pageSize)

	list, total, err := uc.permissions.List(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	return &dto.ListPermissionsResponse{
		Permissions: dto.ToPermissionResponses(list),
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
	}, nil
}

// ListUserPermissionsUseCase returns the active permissions of a user.
type ListUserPermissionsUseCase struct {
	permissions access.Repository
	users       user.Repository
	logger      logger.Interface
}

func NewListUserPermissionsUseCase(permissions access.Repository, users user.Repository, logger logger.Interface) *ListUserPermissionsUseCase {
	return &ListUserPermissionsUseCase{permissions: permissions, users: users, logger: logger}
}

func (uc *ListUserPermissionsUseCase) Execute(ctx context.Context, userID uint) ([]*dto.PermissionResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	list, err := uc.permissions.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}
	return dto.ToPermissionResponses(list), nil
}

// ListMachinePermissionsUseCase returns the active permissions on a machine.
type ListMachinePermissionsUseCase struct {
	permissions access.Repository
	machines    machine.Repository
	logger      logger.Interface
}

func NewListMachinePermissionsUseCase(permissions access.Repository, machines machine.Repository, logger logger.Interface) *ListMachinePermissionsUseCase {
	return &ListMachinePermissionsUseCase{permissions: permissions, machines: machines, logger: logger}
}

func (uc *ListMachinePermissionsUseCase) Execute(ctx context.Context, machineID uint) ([]*dto.PermissionResponse, error) {
	m, err := uc.machines.GetByID(ctx, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}

	list, err := uc.permissions.ListByMachine(ctx, machineID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list machine permissions: %w", err)
	}
	return dto.ToPermissionResponses(list), nil
}

// GetUserMachinePermissionUseCase returns the active permission for a pair.
type GetUserMachinePermissionUseCase struct {
	permissions access.Repository
	logger      logger.Interface
}

func NewGetUserMachinePermissionUseCase(permissions access.Repository, logger logger.Interface) *GetUserMachinePermissionUseCase {
	return &GetUserMachinePermissionUseCase{permissions: permissions, logger: logger}
}

func (uc *GetUserMachinePermissionUseCase) Execute(ctx context.Context, userID, machineID uint) (*dto.PermissionResponse, error) {
	permission, err := uc.permissions.FindActiveByUserMachine(ctx, userID, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	if permission == nil {
		return nil, access.ErrPermissionNotFound
	}
	return dto.ToPermissionResponse(permission), nil
}
