package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/access/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/user"
	"keygate/internal/shared/logger"
)

// SummarizeUserAccessUseCase lists the machines a user can currently reach.
type SummarizeUserAccessUseCase struct {
	permissions access.Repository
	users       user.Repository
	machines    machine.Repository
	logger      logger.Interface
}

func NewSummarizeUserAccessUseCase(permissions access.Repository, users user.Repository, machines machine.Repository, logger logger.Interface) *SummarizeUserAccessUseCase {
	return &SummarizeUserAccessUseCase{
		permissions: permissions,
		users:       users,
		machines:    machines,
		logger:      logger,
	}
}

// Execute skips permissions whose machine no longer exists.
func (uc *SummarizeUserAccessUseCase) Execute(ctx context.Context, userID uint) ([]*dto.UserAccessEntry, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	permissions, err := uc.permissions.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}

	entries := make([]*dto.UserAccessEntry, 0, len(permissions))
	for _, p := range permissions {
		m, err := uc.machines.GetByID(ctx, p.MachineID())
		if err != nil {
			return nil, fmt.Errorf("failed to get machine: %w", err)
		}
		if m == nil {
			uc.logger.Debugw("skipping permission for missing machine", "permission_id", p.ID(), "machine_id", p.MachineID())
			continue
		}
		entries = append(entries, &dto.UserAccessEntry{
			UserID:          u.ID(),
			Username:        u.Username(),
			MachineID:       m.ID(),
			MachineName:     m.Name(),
			PermissionLevel: p.Level().String(),
			IsActive:        p.IsActive(),
			CreatedAt:       p.CreatedAt(),
		})
	}
	return entries, nil
}

// SummarizeMachineAccessUseCase lists the users who can currently reach a
// machine.
type SummarizeMachineAccessUseCase struct {
	permissions access.Repository
	users       user.Repository
	machines    machine.Repository
	logger      logger.Interface
}

func NewSummarizeMachineAccessUseCase(permissions access.Repository, users user.Repository, machines machine.Repository, logger logger.Interface) *SummarizeMachineAccessUseCase {
	return &SummarizeMachineAccessUseCase{
		permissions: permissions,
		users:       users,
		machines:    machines,
		logger:      logger,
	}
}

// Execute skips permissions whose user no longer exists.
func (uc *SummarizeMachineAccessUseCase) Execute(ctx context.Context, machineID uint) ([]*dto.MachineAccessEntry, error) {
	m, err := uc.machines.GetByID(ctx, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}

	permissions, err := uc.permissions.ListByMachine(ctx, machineID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list machine permissions: %w", err)
	}

	entries := make([]*dto.MachineAccessEntry, 0, len(permissions))
	for _, p := range permissions {
		u, err := uc.users.GetByID(ctx, p.UserID())
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			uc.logger.Debugw("skipping permission for missing user", "permission_id", p.ID(), "user_id", p.UserID())
			continue
		}
		entries = append(entries, &dto.MachineAccessEntry{
			UserID:          u.ID(),
			Username:        u.Username(),
			UserType:        u.UserType().String(),
			PermissionLevel: p.Level().String(),
			IsActive:        p.IsActive(),
			CreatedAt:       p.CreatedAt(),
		})
	}
	return entries, nil
}
