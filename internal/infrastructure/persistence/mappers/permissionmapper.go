package mappers

import (
	"fmt"

	"keygate/internal/domain/access"
	"keygate/internal/infrastructure/persistence/models"
	"keygate/internal/shared/mapper"
)

// PermissionMapper handles the conversion between domain entities and persistence models.
type PermissionMapper interface {
	ToEntity(model *models.PermissionModel) (*access.Permission, error)
	ToModel(entity *access.Permission) *models.PermissionModel
	ToEntities(models []*models.PermissionModel) ([]*access.Permission, error)
}

type PermissionMapperImpl struct{}

func NewPermissionMapper() PermissionMapper {
	return &PermissionMapperImpl{}
}

func (m *PermissionMapperImpl) ToEntity(model *models.PermissionModel) (*access.Permission, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := access.ReconstructPermission(
		model.ID,
		model.UserID,
		model.MachineID,
		model.DigitalKeyID,
		model.PermissionLevel,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
		model.RevokedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct permission entity: %w", err)
	}
	return entity, nil
}

func (m *PermissionMapperImpl) ToModel(entity *access.Permission) *models.PermissionModel {
	if entity == nil {
		return nil
	}
	return &models.PermissionModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		MachineID:       entity.MachineID(),
		DigitalKeyID:    entity.DigitalKeyID(),
		PermissionLevel: entity.Level().String(),
		IsActive:        entity.IsActive(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
		RevokedAt:       entity.RevokedAt(),
	}
}

func (m *PermissionMapperImpl) ToEntities(modelList []*models.PermissionModel) ([]*access.Permission, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PermissionModel) uint { return model.ID })
}
