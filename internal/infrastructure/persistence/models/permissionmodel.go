package models

import (
	"time"

	"keygate/internal/shared/constants"
)

// PermissionModel represents the database persistence model for
// user-machine permissions. Uniqueness of the active (user, machine) pair is
// enforced by the grant lock, not by an index.
type PermissionModel struct {
	ID              uint   `gorm:"primarykey"`
	UserID          uint   `gorm:"not null;index:idx_permissions_user_machine,priority:1"`
	MachineID       uint   `gorm:"not null;index:idx_permissions_user_machine,priority:2;index:idx_permissions_machine_id"`
	DigitalKeyID    uint   `gorm:"not null;index:idx_permissions_digital_key_id"`
	PermissionLevel string `gorm:"not null;size:20"`
	IsActive        bool   `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	RevokedAt       *time.Time
}

// TableName specifies the table name for GORM
func (PermissionModel) TableName() string {
	return constants.TablePermissions
}
