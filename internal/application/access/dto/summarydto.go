package dto

import "time"

// UserAccessEntry describes one machine a user can reach.
type UserAccessEntry struct {
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	MachineID       uint      `json:"machine_id"`
	MachineName     string    `json:"machine_name"`
	PermissionLevel string    `json:"permission_level"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// MachineAccessEntry describes one user who can reach a machine.
type MachineAccessEntry struct {
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	UserType        string    `json:"user_type"`
	PermissionLevel string    `json:"permission_level"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
