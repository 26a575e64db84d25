package usecases

import (
	"context"
	"fmt"
	"strings"

	"keygate/internal/application/digitalkey/dto"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
)

type GetDigitalKeyUseCase struct {
	keyRepo digitalkey.Repository
	logger  logger.Interface
}

func NewGetDigitalKeyUseCase(keyRepo digitalkey.Repository, logger logger.Interface) *GetDigitalKeyUseCase {
	return &GetDigitalKeyUseCase{keyRepo: keyRepo, logger: logger}
}

func (uc *GetDigitalKeyUseCase) ExecuteByID(ctx context.Context, id uint) (*dto.DigitalKeyResponse, error) {
	key, err := uc.keyRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get digital key", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get digital key: %w", err)
	}
	if key == nil {
		return nil, digitalkey.ErrKeyNotFound
	}
	return dto.ToDigitalKeyResponse(key), nil
}

func (uc *GetDigitalKeyUseCase) ExecuteByName(ctx context.Context, name string) (*dto.DigitalKeyResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("key name cannot be empty")
	}

	key, err := uc.keyRepo.GetByName(ctx, name)
	if err != nil {
		uc.logger.Errorw("failed to get digital key", "key_name", name, "error", err)
		return nil, fmt.Errorf("failed to get digital key: %w", err)
	}
	if key == nil {
		return nil, digitalkey.ErrKeyNotFound
	}
	return dto.ToDigitalKeyResponse(key), nil
}

// ListDigitalKeysUseCase lists keys, optionally narrowed to one machine or
// one owner.
type ListDigitalKeysUseCase struct {
	keyRepo digitalkey.Repository
	logger  logger.Interface
}

func NewListDigitalKeysUseCase(keyRepo digitalkey.Repository, logger logger.Interface) *ListDigitalKeysUseCase {
	return &ListDigitalKeysUseCase{keyRepo: keyRepo, logger: logger}
}

func (uc *ListDigitalKeysUseCase) Execute(ctx context.Context) ([]*dto.DigitalKeyResponse, error) {
	return uc.list(ctx, digitalkey.ListFilter{})
}

func (uc *ListDigitalKeysUseCase) ExecuteByMachine(ctx context.Context, machineID uint) ([]*dto.DigitalKeyResponse, error) {
	return uc.list(ctx, digitalkey.ListFilter{MachineID: &machineID})
}

func (uc *ListDigitalKeysUseCase) ExecuteByOwner(ctx context.Context, owner string) ([]*dto.DigitalKeyResponse, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, errors.NewValidationError("owner cannot be empty")
	}
	return uc.list(ctx, digitalkey.ListFilter{Owner: owner})
}

func (uc *ListDigitalKeysUseCase) list(ctx context.Context, filter digitalkey.ListFilter) ([]*dto.DigitalKeyResponse, error) {
	keys, err := uc.keyRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list digital keys", "error", err)
		return nil, fmt.Errorf("failed to list digital keys: %w", err)
	}
	return dto.ToDigitalKeyResponses(keys), nil
}
