package mappers

import (
	"cardly/internal/domain/setting"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/mapper"
)

// SystemSettingMapper converts between settings and their rows
type SystemSettingMapper interface {
	ToEntity(model *models.SystemSettingModel) *setting.SystemSetting
	ToModel(entity *setting.SystemSetting) *models.SystemSettingModel
	ToEntities(modelList []*models.SystemSettingModel) []*setting.SystemSetting
}

type systemSettingMapper struct{}

func NewSystemSettingMapper() SystemSettingMapper {
	return systemSettingMapper{}
}

func (systemSettingMapper) ToEntity(model *models.SystemSettingModel) *setting.SystemSetting {
	if model == nil {
		return nil
	}
	return setting.ReconstructSystemSetting(
		model.ID,
		model.SettingKey,
		model.Value,
		setting.ValueType(model.ValueType),
		model.Description,
		model.UpdatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (systemSettingMapper) ToModel(entity *setting.SystemSetting) *models.SystemSettingModel {
	if entity == nil {
		return nil
	}
	return &models.SystemSettingModel{
		ID:          entity.ID(),
		SettingKey:  entity.Key(),
		Value:       entity.Value(),
		ValueType:   string(entity.ValueType()),
		Description: entity.Description(),
		UpdatedBy:   entity.UpdatedBy(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m systemSettingMapper) ToEntities(modelList []*models.SystemSettingModel) []*setting.SystemSetting {
	return mapper.MapSlice(modelList, m.ToEntity)
}
