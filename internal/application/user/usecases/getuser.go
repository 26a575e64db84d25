package usecases

import (
	"context"
	"fmt"
	"strings"

	"keygate/internal/application/user/dto"
	"keygate/internal/domain/user"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
)

// GetUserUseCase looks a single user up by ID or username
type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	if id == 0 {
		return nil, errors.NewValidationError("user ID cannot be zero")
	}

	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return dto.ToUserResponse(u), nil
}

func (uc *GetUserUseCase) ExecuteByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username cannot be empty")
	}

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get user", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return dto.ToUserResponse(u), nil
}
