package dto

import (
	"time"

	"keygate/internal/domain/machine"
	"keygate/internal/shared/mapper"
)

type CreateMachineRequest struct {
	MachineName string `json:"machine_name" binding:"required,min=1,max=100"`
	MachineType string `json:"machine_type" binding:"required,oneof=server workstation iot_device database storage other"`
	IPAddress   string `json:"ip_address,omitempty" binding:"omitempty,ip"`
	Description string `json:"description,omitempty" binding:"omitempty,max=500"`
}

// UpdateMachineRequest is a partial update; nil fields are left alone.
type UpdateMachineRequest struct {
	MachineName *string `json:"machine_name,omitempty" binding:"omitempty,min=1,max=100"`
	MachineType *string `json:"machine_type,omitempty" binding:"omitempty,oneof=server workstation iot_device database storage other"`
	IPAddress   *string `json:"ip_address,omitempty" binding:"omitempty,ip"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type MachineResponse struct {
	ID          uint      `json:"id"`
	MachineName string    `json:"machine_name"`
	MachineType string    `json:"machine_type"`
	IPAddress   string    `json:"ip_address"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToMachineResponse(m *machine.Machine) *MachineResponse {
	if m == nil {
		return nil
	}
	return &MachineResponse{
		ID:          m.ID(),
		MachineName: m.Name(),
		MachineType: m.MachineType().String(),
		IPAddress:   m.IPAddress(),
		Description: m.Description(),
		IsActive:    m.IsActive(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func ToMachineResponses(machines []*machine.Machine) []*MachineResponse {
	if machines == nil {
		return []*MachineResponse{}
	}
	return mapper.MapSlice(machines, ToMachineResponse)
}

type ListMachinesResponse struct {
	Machines []*MachineResponse
	Total    int64
	Page     int
	PageSize int
}
