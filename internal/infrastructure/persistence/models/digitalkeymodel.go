package models

import (
	"time"

	"keygate/internal/shared/constants"
)

// DigitalKeyModel represents the database persistence model for digital keys
type DigitalKeyModel struct {
	ID        uint   `gorm:"primarykey"`
	KeyName   string `gorm:"uniqueIndex:idx_digital_keys_name;not null;size:100"`
	KeyValue  string `gorm:"uniqueIndex:idx_digital_keys_value;not null;size:512"`
	Owner     string `gorm:"not null;size:100;index:idx_digital_keys_owner"`
	MachineID uint   `gorm:"not null;index:idx_digital_keys_machine_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (DigitalKeyModel) TableName() string {
	return constants.TableDigitalKeys
}
