package usecases

import (
	"context"
	"errors"
	"fmt"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

type DeleteDigitalKeyUseCase struct {
	keyRepo digitalkey.Repository
	mirror  mirror.Store
	logger  logger.Interface
}

func NewDeleteDigitalKeyUseCase(keyRepo digitalkey.Repository, store mirror.Store, logger logger.Interface) *DeleteDigitalKeyUseCase {
	return &DeleteDigitalKeyUseCase{keyRepo: keyRepo, mirror: store, logger: logger}
}

// Execute removes the snapshot first, then the row. Permissions granted
// through the key are left in place.
func (uc *DeleteDigitalKeyUseCase) Execute(ctx context.Context, id uint) error {
	key, err := uc.keyRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get digital key: %w", err)
	}
	if key == nil {
		return digitalkey.ErrKeyNotFound
	}

	if !uc.mirror.Delete(ctx, mirror.BucketDigitalKeys, key.ID(), key.Name()) {
		uc.logger.Warnw("digital key snapshot not removed", "id", key.ID(), "key_name", key.Name())
	}

	if err := uc.keyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, digitalkey.ErrKeyNotFound) {
			return err
		}
		uc.logger.Errorw("failed to delete digital key", "id", id, "error", err)
		return fmt.Errorf("failed to delete digital key: %w", err)
	}

	uc.logger.Infow("digital key deleted", "id", id, "key_name", key.Name())
	return nil
}
