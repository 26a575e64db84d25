package dto

import (
	"time"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/shared/mapper"
)

// DigitalKeyRequest is used for both create and update; an update replaces
// every field.
type DigitalKeyRequest struct {
	KeyName   string `json:"key_name" binding:"required,min=1,max=100"`
	KeyValue  string `json:"key_value" binding:"required,max=512"`
	Owner     string `json:"owner" binding:"required,max=100"`
	MachineID uint   `json:"machine_id" binding:"required"`
}

type DigitalKeyResponse struct {
	ID        uint      `json:"id"`
	KeyName   string    `json:"key_name"`
	KeyValue  string    `json:"key_value"`
	Owner     string    `json:"owner"`
	MachineID uint      `json:"machine_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDigitalKeyResponse(k *digitalkey.DigitalKey) *DigitalKeyResponse {
	if k == nil {
		return nil
	}
	return &DigitalKeyResponse{
		ID:        k.ID(),
		KeyName:   k.Name(),
		KeyValue:  k.Value(),
		Owner:     k.Owner(),
		MachineID: k.MachineID(),
		CreatedAt: k.CreatedAt(),
		UpdatedAt: k.UpdatedAt(),
	}
}

func ToDigitalKeyResponses(keys []*digitalkey.DigitalKey) []*DigitalKeyResponse {
	if keys == nil {
		return []*DigitalKeyResponse{}
	}
	return mapper.MapSlice(keys, ToDigitalKeyResponse)
}
