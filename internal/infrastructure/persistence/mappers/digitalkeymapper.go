package mappers

import (
	"fmt"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/infrastructure/persistence/models"
	"keygate/internal/shared/mapper"
)

// DigitalKeyMapper handles the conversion between domain entities and persistence models.
type DigitalKeyMapper interface {
	ToEntity(model *models.DigitalKeyModel) (*digitalkey.DigitalKey, error)
	ToModel(entity *digitalkey.DigitalKey) *models.DigitalKeyModel
	ToEntities(models []*models.DigitalKeyModel) ([]*digitalkey.DigitalKey, error)
}

type DigitalKeyMapperImpl struct{}

func NewDigitalKeyMapper() DigitalKeyMapper {
	return &DigitalKeyMapperImpl{}
}

func (m *DigitalKeyMapperImpl) ToEntity(model *models.DigitalKeyModel) (*digitalkey.DigitalKey, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := digitalkey.ReconstructDigitalKey(
		model.ID,
		model.KeyName,
		model.KeyValue,
		model.Owner,
		model.MachineID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct digital key entity: %w", err)
	}
	return entity, nil
}

func (m *DigitalKeyMapperImpl) ToModel(entity *digitalkey.DigitalKey) *models.DigitalKeyModel {
	if entity == nil {
		return nil
	}
	return &models.DigitalKeyModel{
		ID:        entity.ID(),
		KeyName:   entity.Name(),
		KeyValue:  entity.Value(),
		Owner:     entity.Owner(),
		MachineID: entity.MachineID(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *DigitalKeyMapperImpl) ToEntities(modelList []*models.DigitalKeyModel) ([]*digitalkey.DigitalKey, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.DigitalKeyModel) uint { return model.ID })
}
