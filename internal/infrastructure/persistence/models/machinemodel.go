package models

import (
	"time"

	"keygate/internal/shared/constants"
)

// MachineModel represents the database persistence model for machines
type MachineModel struct {
	ID          uint   `gorm:"primarykey"`
	MachineName string `gorm:"uniqueIndex:idx_machines_name;not null;size:100"`
	MachineType string `gorm:"not null;size:20;index:idx_machines_type"`
	IPAddress   string `gorm:"size:45"`
	Description string `gorm:"size:500"`
	// No gorm default here: a default would make Create skip an explicit false.
	IsActive  bool `gorm:"not null;index:idx_machines_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (MachineModel) TableName() string {
	return constants.TableMachines
}
