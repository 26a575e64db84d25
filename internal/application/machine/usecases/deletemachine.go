package usecases

import (
	"context"
	"errors"
	"fmt"

	"keygate/internal/domain/machine"
	"keygate/internal/shared/logger"
)

type DeleteMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewDeleteMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *DeleteMachineUseCase {
	return &DeleteMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *DeleteMachineUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.machineRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, machine.ErrMachineNotFound) {
			return err
		}
		uc.logger.Errorw("failed to delete machine", "id", id, "error", err)
		return fmt.Errorf("failed to delete machine: %w", err)
	}

	uc.logger.Infow("machine deleted", "id", id)
	return nil
}
