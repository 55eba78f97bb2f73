package usecases

import (
	"context"

	"cardly/internal/application/setting/dto"
	"cardly/internal/domain/permission"
	vo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/mapper"
)

type GetSettingsUseCase struct {
	service  *SettingService
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewGetSettingsUseCase(service *SettingService, enforcer permission.PermissionEnforcer, logger logger.Interface) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		service:  service,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *GetSettingsUseCase) Execute(ctx context.Context, actor authorization.Actor) ([]dto.SystemSettingResponse, error) {
	if err := permission.Require(uc.enforcer, actor, vo.ResourceSetting, vo.ActionRead); err != nil {
		return nil, err
	}
	views, err := uc.service.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list settings", "error", err)
		return nil, err
	}
	return mapper.MapSlice(views, func(v SettingView) dto.SystemSettingResponse {
		return dto.ToSystemSettingResponse(v.Setting, v.IsDefault)
	}), nil
}

type UpdateSettingCommand struct {
	Actor authorization.Actor
	Key   string
	Value string
}

type UpdateSettingUseCase struct {
	service  *SettingService
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewUpdateSettingUseCase(service *SettingService, enforcer permission.PermissionEnforcer, logger logger.Interface) *UpdateSettingUseCase {
	return &UpdateSettingUseCase{
		service:  service,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *UpdateSettingUseCase) Execute(ctx context.Context, cmd UpdateSettingCommand) (*dto.SystemSettingResponse, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, vo.ResourceSetting, vo.ActionUpdate); err != nil {
		return nil, err
	}
	st, err := uc.service.Set(ctx, cmd.Key, cmd.Value, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Warnw("failed to update setting", "key", cmd.Key, "error", err)
		return nil, err
	}
	resp := dto.ToSystemSettingResponse(st, false)
	return &resp, nil
}
