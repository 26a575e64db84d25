package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/infrastructure/persistence/mappers"
	"keygate/internal/infrastructure/persistence/models"
	apperrors "keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
)

// DigitalKeyRepositoryImpl implements the digitalkey.Repository interface.
type DigitalKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DigitalKeyMapper
	logger logger.Interface
}

func NewDigitalKeyRepository(db *gorm.DB, logger logger.Interface) digitalkey.Repository {
	return &DigitalKeyRepositoryImpl{
		db:     db,
		mapper: mappers.NewDigitalKeyMapper(),
		logger: logger,
	}
}

func (r *DigitalKeyRepositoryImpl) Create(ctx context.Context, k *digitalkey.DigitalKey) error {
	model := r.mapper.ToModel(k)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return keyDuplicateError(err)
		}
		// key_value is deliberately absent from every log line.
		r.logger.Errorw("failed to create digital key in database", "name", model.KeyName, "error", err)
		return fmt.Errorf("failed to create digital key: %w", err)
	}

	if err := k.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set digital key ID: %w", err)
	}

	r.logger.Infow("digital key created successfully", "id", model.ID, "name", model.KeyName, "machine_id", model.MachineID)
	return nil
}

func (r *DigitalKeyRepositoryImpl) Update(ctx context.Context, k *digitalkey.DigitalKey) error {
	model := r.mapper.ToModel(k)

	result := r.db.WithContext(ctx).Model(&models.DigitalKeyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"key_name":   model.KeyName,
			"key_value":  model.KeyValue,
			"owner":      model.Owner,
			"machine_id": model.MachineID,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return keyDuplicateError(result.Error)
		}
		r.logger.Errorw("failed to update digital key", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update digital key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return digitalkey.ErrKeyNotFound
	}

	r.logger.Infow("digital key updated successfully", "id", model.ID, "machine_id", model.MachineID)
	return nil
}

func (r *DigitalKeyRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.DigitalKeyModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete digital key", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete digital key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return digitalkey.ErrKeyNotFound
	}

	r.logger.Infow("digital key deleted successfully", "id", id)
	return nil
}

func (r *DigitalKeyRepositoryImpl) GetByID(ctx context.Context, id uint) (*digitalkey.DigitalKey, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *DigitalKeyRepositoryImpl) GetByName(ctx context.Context, name string) (*digitalkey.DigitalKey, error) {
	return r.first(ctx, "key_name = ?", name)
}

func (r *DigitalKeyRepositoryImpl) GetByValue(ctx context.Context, value string) (*digitalkey.DigitalKey, error) {
	return r.first(ctx, "key_value = ?", value)
}

func (r *DigitalKeyRepositoryImpl) first(ctx context.Context, cond string, arg any) (*digitalkey.DigitalKey, error) {
	var model models.DigitalKeyModel

	if err := r.db.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get digital key", "condition", cond, "error", err)
		return nil, fmt.Errorf("failed to get digital key: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map digital key model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map digital key: %w", err)
	}
	return entity, nil
}

func (r *DigitalKeyRepositoryImpl) List(ctx context.Context, filter digitalkey.ListFilter) ([]*digitalkey.DigitalKey, error) {
	query := r.db.WithContext(ctx).Model(&models.DigitalKeyModel{})
	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}

	var modelList []*models.DigitalKeyModel
	if err := query.Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list digital keys", "error", err)
		return nil, fmt.Errorf("failed to list digital keys: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map digital key models to entities", "error", err)
		return nil, fmt.Errorf("failed to map digital keys: %w", err)
	}
	return entities, nil
}

func keyDuplicateError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "digital_keys.key_value") || strings.Contains(msg, "idx_digital_keys_value") {
		return digitalkey.ErrKeyValueExists
	}
	return digitalkey.ErrKeyNameExists
}
