package usecases

import (
	"context"
	"fmt"

	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

type DeleteUserUseCase struct {
	userRepo user.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		enforcer: enforcer,
		logger:   logger,
	}
}

// Execute refuses the actor's own account and accounts that still own cards.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor authorization.Actor, userID uint) error {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceUser, permvo.ActionDelete); err != nil {
		return err
	}
	if userID == actor.UserID {
		return errors.NewSelfActionError("cannot delete your own account")
	}

	if _, err := loadUser(ctx, uc.userRepo, userID); err != nil {
		return err
	}
	deleted, err := uc.userRepo.DeleteIfNoCards(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewInvalidStateError("user still owns cards", fmt.Sprintf("id=%d", userID))
	}

	uc.logger.Infow("user deleted", "user_id", userID, "actor_id", actor.UserID)
	return nil
}
