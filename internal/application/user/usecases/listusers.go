package usecases

import (
	"context"

	"cardly/internal/application/user/dto"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/mapper"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, actor authorization.Actor, req dto.ListUsersRequest) (*dto.ListUsersResult, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceUser, permvo.ActionList); err != nil {
		return nil, err
	}
	filter, err := req.ToFilter(true)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	return &dto.ListUsersResult{
		Items:   mapper.MapSlice(items, dto.ToUserListItemDTO),
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PageSize,
	}, nil
}
