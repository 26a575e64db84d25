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

// UpdateDigitalKeyCommand replaces every field of the key.
type UpdateDigitalKeyCommand struct {
	ID        uint   `json:"id" validate:"required"`
	KeyName   string `json:"key_name" validate:"required,min=1,max=100"`
	KeyValue  string `json:"key_value" validate:"required,max=512"`
	Owner     string `json:"owner" validate:"required,max=100"`
	MachineID uint   `json:"machine_id" validate:"required"`
}

type UpdateDigitalKeyUseCase struct {
	keyRepo digitalkey.Repository
	binding *access.BindingValidator
	mirror  mirror.Store
	logger  logger.Interface
}

func NewUpdateDigitalKeyUseCase(
	keyRepo digitalkey.Repository,
	machineRepo machine.Repository,
	store mirror.Store,
	logger logger.Interface,
) *UpdateDigitalKeyUseCase {
	return &UpdateDigitalKeyUseCase{
		keyRepo: keyRepo,
		binding: access.NewBindingValidator(machineRepo),
		mirror:  store,
		logger:  logger,
	}
}

// Execute re-validates the machine binding, saves the key, then drops the
// snapshot stored under the old name and writes a fresh one. Existing permissions are not
// re-checked when a key is rebound.
func (uc *UpdateDigitalKeyUseCase) Execute(ctx context.Context, cmd UpdateDigitalKeyCommand) (*dto.DigitalKeyResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	key, err := uc.keyRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get digital key", "id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to get digital key: %w", err)
	}
	if key == nil {
		return nil, digitalkey.ErrKeyNotFound
	}

	if err := uc.binding.ValidateKeyUpdate(ctx, cmd.MachineID); err != nil {
		uc.logger.Warnw("digital key update rejected", "id", cmd.ID, "machine_id", cmd.MachineID, "error", err)
		return nil, bindingError(cmd.MachineID, err)
	}

	if err := uc.checkUnique(ctx, key.ID(), cmd.KeyName, cmd.KeyValue); err != nil {
		return nil, err
	}

	oldName := key.Name()
	if err := key.Replace(cmd.KeyName, cmd.KeyValue, cmd.Owner, cmd.MachineID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.keyRepo.Update(ctx, key); err != nil {
		uc.logger.Errorw("failed to update digital key", "id", key.ID(), "error", err)
		return nil, fmt.Errorf("failed to update digital key: %w", err)
	}

	if !uc.mirror.Delete(ctx, mirror.BucketDigitalKeys, key.ID(), oldName) {
		uc.logger.Warnw("previous digital key snapshot not removed", "id", key.ID(), "key_name", oldName)
	}

	if !uc.mirror.Write(ctx, mirror.BucketDigitalKeys, key.ID(), key.Name(), mirror.NewKeyRecord(key)) {
		uc.logger.Warnw("digital key updated but not mirrored", "id", key.ID(), "key_name", key.Name())
	}

	uc.logger.Infow("digital key updated", "id", key.ID(), "key_name", key.Name(), "machine_id", key.MachineID())
	return dto.ToDigitalKeyResponse(key), nil
}

func (uc *UpdateDigitalKeyUseCase) checkUnique(ctx context.Context, id uint, name, value string) error {
	other, err := uc.keyRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check existing digital key: %w", err)
	}
	if other != nil && other.ID() != id {
		return digitalkey.ErrKeyNameExists
	}

	other, err = uc.keyRepo.GetByValue(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to check existing digital key: %w", err)
	}
	if other != nil && other.ID() != id {
		return digitalkey.ErrKeyValueExists
	}
	return nil
}
