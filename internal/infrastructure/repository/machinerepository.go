package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"keygate/internal/domain/machine"
	"keygate/internal/infrastructure/persistence/mappers"
	"keygate/internal/infrastructure/persistence/models"
	apperrors "keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
)

// MachineRepositoryImpl implements the machine.Repository interface.
type MachineRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MachineMapper
	logger logger.Interface
}

func NewMachineRepository(db *gorm.DB, logger logger.Interface) machine.Repository {
	return &MachineRepositoryImpl{
		db:     db,
		mapper: mappers.NewMachineMapper(),
		logger: logger,
	}
}

func (r *MachineRepositoryImpl) Create(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return machine.ErrMachineNameExists
		}
		r.logger.Errorw("failed to create machine in database", "name", model.MachineName, "error", err)
		return fmt.Errorf("failed to create machine: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set machine ID: %w", err)
	}

	r.logger.Infow("machine created successfully", "id", model.ID, "name", model.MachineName)
	return nil
}

func (r *MachineRepositoryImpl) Update(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)

	result := r.db.WithContext(ctx).Model(&models.MachineModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"machine_name": model.MachineName,
			"machine_type": model.MachineType,
			"ip_address":   model.IPAddress,
			"description":  model.Description,
			"is_active":    model.IsActive,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return machine.ErrMachineNameExists
		}
		r.logger.Errorw("failed to update machine", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}

	r.logger.Infow("machine updated successfully", "id", model.ID)
	return nil
}

func (r *MachineRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MachineModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete machine", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}

	r.logger.Infow("machine deleted successfully", "id", id)
	return nil
}

func (r *MachineRepositoryImpl) GetByID(ctx context.Context, id uint) (*machine.Machine, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MachineRepositoryImpl) GetByName(ctx context.Context, name string) (*machine.Machine, error) {
	return r.first(ctx, "machine_name = ?", name)
}

func (r *MachineRepositoryImpl) first(ctx context.Context, cond string, arg any) (*machine.Machine, error) {
	var model models.MachineModel

	if err := r.db.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get machine", "condition", cond, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map machine model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map machine: %w", err)
	}
	return entity, nil
}

func (r *MachineRepositoryImpl) List(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MachineModel{})
	if filter.MachineType != nil {
		query = query.Where("machine_type = ?", filter.MachineType.String())
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count machines", "error", err)
		return nil, 0, fmt.Errorf("failed to count machines: %w", err)
	}

	query = query.Order("id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var modelList []*models.MachineModel
	if err := query.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list machines", "error", err)
		return nil, 0, fmt.Errorf("failed to list machines: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map machine models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map machines: %w", err)
	}
	return entities, total, nil
}
