package usecases

import (
	"context"

	"cardly/internal/application/user/dto"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

// ToggleUserStatusUseCase flips is_active on one account.
type ToggleUserStatusUseCase struct {
	userRepo user.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewToggleUserStatusUseCase(userRepo user.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *ToggleUserStatusUseCase {
	return &ToggleUserStatusUseCase{
		userRepo: userRepo,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ToggleUserStatusUseCase) Execute(ctx context.Context, actor authorization.Actor, userID uint) (*dto.UserDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceUser, permvo.ActionToggle); err != nil {
		return nil, err
	}
	if userID == actor.UserID {
		return nil, errors.NewSelfActionError("cannot change the status of your own account")
	}

	u, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	u.SetActive(!u.IsActive())
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to toggle user status", "user_id", userID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user status toggled", "user_id", userID, "is_active", u.IsActive(), "actor_id", actor.UserID)
	result := dto.ToUserDTO(u)
	return &result, nil
}
