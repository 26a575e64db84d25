package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/digitalkey/dto"
	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

type CreateDigitalKeyCommand struct {
	KeyName   string `json:"key_name" validate:"required,min=1,max=100"`
	KeyValue  string `json:"key_value" validate:"required,max=512"`
	Owner     string `json:"owner" validate:"required,max=100"`
	MachineID uint   `json:"machine_id" validate:"required"`
}

type CreateDigitalKeyUseCase struct {
	keyRepo digitalkey.Repository
	binding *access.BindingValidator
	mirror  mirror.Store
	logger  logger.Interface
}

func NewCreateDigitalKeyUseCase(
	keyRepo digitalkey.Repository,
	machineRepo machine.Repository,
	store mirror.Store,
	logger logger.Interface,
) *CreateDigitalKeyUseCase {
	return &CreateDigitalKeyUseCase{
		keyRepo: keyRepo,
		binding: access.NewBindingValidator(machineRepo),
		mirror:  store,
		logger:  logger,
	}
}

// Execute stores the key and writes its snapshot. A failed snapshot write
// is logged and does not fail the request.
func (uc *CreateDigitalKeyUseCase) Execute(ctx context.Context, cmd CreateDigitalKeyCommand) (*dto.DigitalKeyResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	if err := uc.binding.ValidateKeyCreation(ctx, cmd.MachineID); err != nil {
		uc.logger.Warnw("digital key rejected", "key_name", cmd.KeyName, "machine_id", cmd.MachineID, "error", err)
		return nil, bindingError(cmd.MachineID, err)
	}

	if err := uc.checkUnique(ctx, cmd.KeyName, cmd.KeyValue); err != nil {
		return nil, err
	}

	key, err := digitalkey.NewDigitalKey(cmd.KeyName, cmd.KeyValue, cmd.Owner, cmd.MachineID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.keyRepo.Create(ctx, key); err != nil {
		uc.logger.Errorw("failed to persist digital key", "key_name", cmd.KeyName, "error", err)
		return nil, fmt.Errorf("failed to save digital key: %w", err)
	}

	if !uc.mirror.Write(ctx, mirror.BucketDigitalKeys, key.ID(), key.Name(), mirror.NewKeyRecord(key)) {
		uc.logger.Warnw("digital key created but not mirrored", "id", key.ID(), "key_name", key.Name())
	}

	uc.logger.Infow("digital key created", "id", key.ID(), "key_name", key.Name(), "machine_id", key.MachineID())
	return dto.ToDigitalKeyResponse(key), nil
}

func (uc *CreateDigitalKeyUseCase) checkUnique(ctx context.Context, name, value string) error {
	existing, err := uc.keyRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check existing digital key: %w", err)
	}
	if existing != nil {
		return digitalkey.ErrKeyNameExists
	}

	existing, err = uc.keyRepo.GetByValue(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to check existing digital key: %w", err)
	}
	if existing != nil {
		return digitalkey.ErrKeyValueExists
	}
	return nil
}
