package dto

import (
	"time"

	"keygate/internal/domain/access"
	"keygate/internal/shared/mapper"
)

// GrantAccessRequest is the body of POST /permissions/grant.
type GrantAccessRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	MachineID       uint   `json:"machine_id" binding:"required"`
	DigitalKeyID    uint   `json:"digital_key_id" binding:"required"`
	PermissionLevel string `json:"permission_level,omitempty" binding:"omitempty,oneof=read write execute admin"`
}

// UpdatePermissionRequest is a partial update; nil fields are left alone.
type UpdatePermissionRequest struct {
	PermissionLevel *string `json:"permission_level,omitempty" binding:"omitempty,oneof=read write execute admin"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type PermissionResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	MachineID       uint       `json:"machine_id"`
	DigitalKeyID    uint       `json:"digital_key_id"`
	PermissionLevel string     `json:"permission_level"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	RevokedAt       *time.Time `json:"revoked_at"`
}

func ToPermissionResponse(p *access.Permission) *PermissionResponse {
	if p == nil {
		return nil
	}
	return &PermissionResponse{
		ID:              p.ID(),
		UserID:          p.UserID(),
		MachineID:       p.MachineID(),
		DigitalKeyID:    p.DigitalKeyID(),
		PermissionLevel: p.Level().String(),
		IsActive:        p.IsActive(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
		RevokedAt:       p.RevokedAt(),
	}
}

func ToPermissionResponses(list []*access.Permission) []*PermissionResponse {
	if list == nil {
		return []*PermissionResponse{}
	}
	return mapper.MapSlice(list, ToPermissionResponse)
}

// ListPermissionsResponse is one page of permissions.
type ListPermissionsResponse struct {
	Permissions []*PermissionResponse
	Total       int64
	Page        int
	PageSize    int
}
