package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cardly/internal/domain/setting"
	"cardly/internal/infrastructure/persistence/mappers"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/db"
	"cardly/internal/shared/logger"
)

// SystemSettingRepository implements setting.Repository
type SystemSettingRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.SystemSettingMapper
}

// NewSystemSettingRepository creates a new SystemSettingRepository
func NewSystemSettingRepository(db *gorm.DB, logger logger.Interface) setting.Repository {
	return &SystemSettingRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewSystemSettingMapper(),
	}
}

// GetByKey retrieves a setting by key
func (r *SystemSettingRepository) GetByKey(ctx context.Context, key string) (*setting.SystemSetting, error) {
	var model models.SystemSettingModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("setting_key = ?", key).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, setting.ErrSettingNotFound
		}
		r.logger.Error("failed to get setting by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get setting by key: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// GetAll retrieves all system settings
func (r *SystemSettingRepository) GetAll(ctx context.Context) ([]*setting.SystemSetting, error) {
	var modelList []*models.SystemSettingModel

	err := db.GetTxFromContext(ctx, r.db).
		Order("setting_key ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Error("failed to get all settings", "error", err)
		return nil, fmt.Errorf("failed to get all settings: %w", err)
	}

	return r.mapper.ToEntities(modelList), nil
}

// Upsert creates or updates a setting
func (r *SystemSettingRepository) Upsert(ctx context.Context, s *setting.SystemSetting) error {
	model := r.mapper.ToModel(s)
	// the key is the conflict target; an explicit id would conflict on the primary key first
	model.ID = 0

	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "value_type", "description", "updated_by", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Error("failed to upsert setting", "key", s.Key(), "error", err)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	if s.ID() == 0 {
		var stored models.SystemSettingModel
		if err := db.GetTxFromContext(ctx, r.db).Select("id").Where("setting_key = ?", s.Key()).First(&stored).Error; err == nil {
			s.SetID(stored.ID)
		}
	}

	return nil
}
