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

type CreateUserCommand struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"user_type" validate:"omitempty,oneof=admin user operator viewer owner"`
}

// CreateUserUseCase handles the business logic for creating a user
type CreateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewCreateUserUseCase creates a new create user use case
func NewCreateUserUseCase(userRepo user.Repository, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserResponse, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		uc.logger.Errorw("database error while checking username", "username", cmd.Username, "error", err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		uc.logger.Warnw("username already exists", "username", cmd.Username)
		return nil, user.ErrUsernameExists
	}

	existing, err = uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("database error while checking email", "email", cmd.Email, "error", err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		uc.logger.Warnw("email already exists", "email", cmd.Email)
		return nil, user.ErrEmailExists
	}

	u, err := user.NewUser(cmd.Username, cmd.Email, user.UserType(cmd.UserType))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist user", "username", cmd.Username, "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	uc.logger.Infow("user created", "id", u.ID(), "username", u.Username(), "user_type", u.UserType())
	return dto.ToUserResponse(u), nil
}
