package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/machine/dto"
	"keygate/internal/domain/machine"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

type UpdateMachineCommand struct {
	ID          uint    `json:"id" validate:"required"`
	MachineName *string `json:"machine_name" validate:"omitempty,min=1,max=100"`
	MachineType *string `json:"machine_type" validate:"omitempty,oneof=server workstation iot_device database storage other"`
	IPAddress   *string `json:"ip_address" validate:"omitempty,ip"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewUpdateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *UpdateMachineUseCase {
	return &UpdateMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

// Execute applies a partial update. Deactivating a machine leaves its
// permissions and keys untouched.
func (uc *UpdateMachineUseCase) Execute(ctx context.Context, cmd UpdateMachineCommand) (*dto.MachineResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	m, err := uc.machineRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get machine", "id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}

	if cmd.MachineName != nil && *cmd.MachineName != m.Name() {
		other, err := uc.machineRepo.GetByName(ctx, *cmd.MachineName)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing machine: %w", err)
		}
		if other != nil && other.ID() != m.ID() {
			return nil, machine.ErrMachineNameExists
		}
		if err := m.UpdateName(*cmd.MachineName); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.MachineType != nil {
		if err := m.ChangeType(machine.MachineType(*cmd.MachineType)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.IPAddress != nil {
		m.UpdateIPAddress(*cmd.IPAddress)
	}
	if cmd.Description != nil {
		m.UpdateDescription(*cmd.Description)
	}
	if cmd.IsActive != nil {
		if *cmd.IsActive {
			m.Activate()
		} else {
			m.Deactivate()
		}
	}

	if err := uc.machineRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update machine", "id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to update machine: %w", err)
	}

	uc.logger.Infow("machine updated", "id", m.ID(), "is_active", m.IsActive())
	return dto.ToMachineResponse(m), nil
}
