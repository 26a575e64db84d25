package mappers

import (
	"fmt"

	"keygate/internal/domain/machine"
	"keygate/internal/infrastructure/persistence/models"
	"keygate/internal/shared/mapper"
)

// MachineMapper handles the conversion between domain entities and persistence models.
type MachineMapper interface {
	ToEntity(model *models.MachineModel) (*machine.Machine, error)
	ToModel(entity *machine.Machine) *models.MachineModel
	ToEntities(models []*models.MachineModel) ([]*machine.Machine, error)
}

type MachineMapperImpl struct{}

func NewMachineMapper() MachineMapper {
	return &MachineMapperImpl{}
}

func (m *MachineMapperImpl) ToEntity(model *models.MachineModel) (*machine.Machine, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := machine.ReconstructMachine(
		model.ID,
		model.MachineName,
		model.MachineType,
		model.IPAddress,
		model.Description,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct machine entity: %w", err)
	}
	return entity, nil
}

func (m *MachineMapperImpl) ToModel(entity *machine.Machine) *models.MachineModel {
	if entity == nil {
		return nil
	}
	return &models.MachineModel{
		ID:          entity.ID(),
		MachineName: entity.Name(),
		MachineType: entity.MachineType().String(),
		IPAddress:   entity.IPAddress(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *MachineMapperImpl) ToEntities(modelList []*models.MachineModel) ([]*machine.Machine, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.MachineModel) uint { return model.ID })
}
