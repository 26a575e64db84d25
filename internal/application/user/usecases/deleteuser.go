package usecases

import (
	"context"
	"errors"
	"fmt"

	"keygate/internal/domain/user"
	"keygate/internal/shared/logger"
)

// DeleteUserUseCase removes a user outright. Permissions that reference the
// user are kept; access summaries skip them.
type DeleteUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		uc.logger.Errorw("failed to delete user", "id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	uc.logger.Infow("user deleted", "id", id)
	return nil
}
