package usecases

import (
	"context"
	"fmt"
	"strings"

	"keygate/internal/application/machine/dto"
	"keygate/internal/domain/machine"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
)

type GetMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewGetMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *GetMachineUseCase {
	return &GetMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *GetMachineUseCase) ExecuteByID(ctx context.Context, id uint) (*dto.MachineResponse, error) {
	if id == 0 {
		return nil, errors.NewValidationError("machine ID cannot be zero")
	}

	m, err := uc.machineRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get machine", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}
	return dto.ToMachineResponse(m), nil
}

func (uc *GetMachineUseCase) ExecuteByName(ctx context.Context, name string) (*dto.MachineResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("machine name cannot be empty")
	}

	m, err := uc.machineRepo.GetByName(ctx, name)
	if err != nil {
		uc.logger.Errorw("failed to get machine", "machine_name", name, "error", err)
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	if m == nil {
		return nil, machine.ErrMachineNotFound
	}
	return dto.ToMachineResponse(m), nil
}
