package usecases

import (
	"context"

	"cardly/internal/application/user/dto"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		enforcer: enforcer,
		logger:   logger,
	}
}

// Execute returns any account to admins.
func (uc *GetUserUseCase) Execute(ctx context.Context, actor authorization.Actor, userID uint) (*dto.UserDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceUser, permvo.ActionRead); err != nil {
		return nil, err
	}
	return uc.load(ctx, userID)
}

// ExecuteSelf returns the actor's own account; every authenticated user may call it.
func (uc *GetUserUseCase) ExecuteSelf(ctx context.Context, actor authorization.Actor) (*dto.UserDTO, error) {
	return uc.load(ctx, actor.UserID)
}

func (uc *GetUserUseCase) load(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	result := dto.ToUserDTO(u)
	return &result, nil
}
