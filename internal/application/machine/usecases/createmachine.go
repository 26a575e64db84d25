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

type CreateMachineCommand struct {
	MachineName string `json:"machine_name" validate:"required,min=1,max=100"`
	MachineType string `json:"machine_type" validate:"required,oneof=server workstation iot_device database storage other"`
	IPAddress   string `json:"ip_address" validate:"omitempty,ip"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type CreateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewCreateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *CreateMachineUseCase {
	return &CreateMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

// Execute registers an active machine under a unique name.
func (uc *CreateMachineUseCase) Execute(ctx context.Context, cmd CreateMachineCommand) (*dto.MachineResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	existing, err := uc.machineRepo.GetByName(ctx, cmd.MachineName)
	if err != nil {
		uc.logger.Errorw("database error while checking machine name", "machine_name", cmd.MachineName, "error", err)
		return nil, fmt.Errorf("failed to check existing machine: %w", err)
	}
	if existing != nil {
		uc.logger.Warnw("machine name already exists", "machine_name", cmd.MachineName)
		return nil, machine.ErrMachineNameExists
	}

	m, err := machine.NewMachine(cmd.MachineName, machine.MachineType(cmd.MachineType), cmd.IPAddress, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to persist machine", "machine_name", cmd.MachineName, "error", err)
		return nil, fmt.Errorf("failed to save machine: %w", err)
	}

	uc.logger.Infow("machine created", "id", m.ID(), "machine_name", m.Name(), "machine_type", m.MachineType())
	return dto.ToMachineResponse(m), nil
}
