package dto

import (
	"time"

	"keygate/internal/domain/user"
	"keygate/internal/shared/mapper"
)

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	UserType string `json:"user_type,omitempty" binding:"omitempty,oneof=admin user operator viewer owner"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	UserType *string `json:"user_type,omitempty" binding:"omitempty,oneof=admin user operator viewer owner"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		UserType:  u.UserType().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func ToUserResponses(users []*user.User) []*UserResponse {
	if users == nil {
		return []*UserResponse{}
	}
	return mapper.MapSlice(users, ToUserResponse)
}

// ListUsersResponse is one page of users
type ListUsersResponse struct {
	Users    []*UserResponse
	Total    int64
	Page     int
	PageSize int
}
