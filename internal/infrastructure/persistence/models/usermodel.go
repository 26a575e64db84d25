package models

import (
	"time"

	"keygate/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Username  string `gorm:"uniqueIndex:idx_users_username;not null;size:100"`
	Email     string `gorm:"uniqueIndex:idx_users_email;not null;size:255"`
	UserType  string `gorm:"not null;default:user;size:20;index:idx_users_type"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
