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

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute returns one page of users ordered by ID.
func (uc *ListUsersUseCase) Execute(ctx context.Context, page, pageSize int) (*dto.ListUsersResponse, error) {
	p := utils.ValidatePagination(page, pageSize)

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{Page: p.Page, PageSize: p.PageSize})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &dto.ListUsersResponse{
		Users:    dto.ToUserResponses(users),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// ExecuteByType returns every user of the given type.
func (uc *ListUsersUseCase) ExecuteByType(ctx context.Context, userType string) ([]*dto.UserResponse, error) {
	t := user.UserType(userType)
	if !t.IsValid() {
		return nil, errors.NewValidationError("invalid user type", userType)
	}

	users, _, err := uc.userRepo.List(ctx, user.ListFilter{UserType: &t})
	if err != nil {
		uc.logger.Errorw("failed to list users by type", "user_type", userType, "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return dto.ToUserResponses(users), nil
}
