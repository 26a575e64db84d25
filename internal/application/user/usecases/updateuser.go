package usecases

import (
	"context"
	"fmt"

	"keygate/internal/application/user/dto"
	"keygate/internal/domain/user"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// UpdateUserCommand is a partial update; nil fields are left alone.
type UpdateUserCommand struct {
	ID       uint    `json:"id" validate:"required"`
	Username *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	UserType *string `json:"user_type" validate:"omitempty,oneof=admin user operator viewer owner"`
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if cmd.Username != nil && *cmd.Username != u.Username() {
		other, err := uc.userRepo.GetByUsername(ctx, *cmd.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if other != nil && other.ID() != u.ID() {
			return nil, user.ErrUsernameExists
		}
		if err := u.UpdateUsername(*cmd.Username); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Email != nil && *cmd.Email != u.Email() {
		other, err := uc.userRepo.GetByEmail(ctx, *cmd.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if other != nil && other.ID() != u.ID() {
			return nil, user.ErrEmailExists
		}
		if err := u.UpdateEmail(*cmd.Email); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.UserType != nil {
		if err := u.ChangeType(user.UserType(*cmd.UserType)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("user updated", "id", u.ID())
	return dto.ToUserResponse(u), nil
}
