package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"keygate/internal/domain/access"
	"keygate/internal/infrastructure/persistence/mappers"
	"keygate/internal/infrastructure/persistence/models"
	"keygate/internal/shared/logger"
)

// PermissionRepositoryImpl implements the access.Repository interface.
type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
	logger logger.Interface
}

func NewPermissionRepository(db *gorm.DB, logger logger.Interface) access.Repository {
	return &PermissionRepositoryImpl{
		db:     db,
		mapper: mappers.NewPermissionMapper(),
		logger: logger,
	}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *access.Permission) error {
	model := r.mapper.ToModel(p)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create permission in database",
			"user_id", model.UserID,
			"machine_id", model.MachineID,
			"error", err)
		return fmt.Errorf("failed to create permission: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set permission ID: %w", err)
	}

	r.logger.Infow("permission created successfully",
		"id", model.ID,
		"user_id", model.UserID,
		"machine_id", model.MachineID,
		"level", model.PermissionLevel)
	return nil
}

// Update writes the full mutable state, including a cleared revoked_at.
func (r *PermissionRepositoryImpl) Update(ctx context.Context, p *access.Permission) error {
	model := r.mapper.ToModel(p)

	result := r.db.WithContext(ctx).Model(&models.PermissionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"permission_level": model.PermissionLevel,
			"is_active":        model.IsActive,
			"revoked_at":       model.RevokedAt,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update permission", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update permission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return access.ErrPermissionNotFound
	}

	r.logger.Infow("permission updated successfully", "id", model.ID, "is_active", model.IsActive)
	return nil
}

func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PermissionModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete permission", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete permission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return access.ErrPermissionNotFound
	}

	r.logger.Infow("permission deleted successfully", "id", id)
	return nil
}

func (r *PermissionRepositoryImpl) GetByID(ctx context.Context, id uint) (*access.Permission, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *PermissionRepositoryImpl) FindActiveByUserMachine(ctx context.Context, userID, machineID uint) (*access.Permission, error) {
	return r.first(r.db.WithContext(ctx).
		Where("user_id = ? AND machine_id = ? AND is_active = ?", userID, machineID, true).
		Order("id ASC"))
}

func (r *PermissionRepositoryImpl) FindLatestByUserMachine(ctx context.Context, userID, machineID uint) (*access.Permission, error) {
	return r.first(r.db.WithContext(ctx).
		Where("user_id = ? AND machine_id = ?", userID, machineID).
		Order("created_at DESC").Order("id DESC"))
}

func (r *PermissionRepositoryImpl) first(query *gorm.DB) (*access.Permission, error) {
	var model models.PermissionModel

	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get permission", "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map permission model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map permission: %w", err)
	}
	return entity, nil
}

func (r *PermissionRepositoryImpl) ListByUser(ctx context.Context, userID uint, activeOnly bool) ([]*access.Permission, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	return r.find(query, "user_id", userID)
}

func (r *PermissionRepositoryImpl) ListByMachine(ctx context.Context, machineID uint, activeOnly bool) ([]*access.Permission, error) {
	query := r.db.WithContext(ctx).Where("machine_id = ?", machineID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	return r.find(query, "machine_id", machineID)
}

func (r *PermissionRepositoryImpl) find(query *gorm.DB, field string, value uint) ([]*access.Permission, error) {
	var modelList []*models.PermissionModel
	if err := query.Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list permissions", field, value, "error", err)
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map permission models to entities", field, value, "error", err)
		return nil, fmt.Errorf("failed to map permissions: %w", err)
	}
	return entities, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*access.Permission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PermissionModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count permissions", "error", err)
		return nil, 0, fmt.Errorf("failed to count permissions: %w", err)
	}

	query = query.Order("id ASC")
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var modelList []*models.PermissionModel
	if err := query.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list permissions", "error", err)
		return nil, 0, fmt.Errorf("failed to list permissions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map permissions: %w", err)
	}
	return entities, total, nil
}
