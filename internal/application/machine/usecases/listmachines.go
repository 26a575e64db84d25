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

type ListMachinesUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewListMachinesUseCase(machineRepo machine.Repository, logger logger.Interface) *ListMachinesUseCase {
	return &ListMachinesUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *ListMachinesUseCase) Execute(ctx context.Context, page, pageSize int) (*dto.ListMachinesResponse, error) {
	p := utils.ValidatePagination(page, pageSize)

	machines, total, err := uc.machineRepo.List(ctx, machine.ListFilter{Page: p.Page, PageSize: p.PageSize})
	if err != nil {
		uc.logger.Errorw("failed to list machines", "error", err)
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	return &dto.ListMachinesResponse{
		Machines: dto.ToMachineResponses(machines),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

func (uc *ListMachinesUseCase) ExecuteByType(ctx context.Context, machineType string) ([]*dto.MachineResponse, error) {
	t := machine.MachineType(machineType)
	if !t.IsValid() {
		return nil, errors.NewValidationError("invalid machine type", machineType)
	}
	return uc.list(ctx, machine.ListFilter{MachineType: &t})
}

// ExecuteActive returns every machine that has not been deactivated.
func (uc *ListMachinesUseCase) ExecuteActive(ctx context.Context) ([]*dto.MachineResponse, error) {
	active := true
	return uc.list(ctx, machine.ListFilter{IsActive: &active})
}

func (uc *ListMachinesUseCase) list(ctx context.Context, filter machine.ListFilter) ([]*dto.MachineResponse, error) {
	machines, _, err := uc.machineRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list machines", "error", err)
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return dto.ToMachineResponses(machines), nil
}
