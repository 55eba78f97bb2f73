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

type UpdateUserCommand struct {
	Actor   authorization.Actor
	UserID  uint
	Request dto.UpdateUserRequest
}

// UpdateUserUseCase handles the business logic for updating a user
type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceUser, permvo.ActionUpdate); err != nil {
		return nil, err
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID)
	if err != nil {
		return nil, err
	}
	req := cmd.Request

	if req.Name != nil {
		if err := u.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil && user.NormalizeEmail(*req.Email) != u.Email() {
		if err := ensureEmailFree(ctx, uc.userRepo, *req.Email, u.ID()); err != nil {
			return nil, err
		}
		if err := u.ChangeEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Role != nil && authorization.UserRole(*req.Role) != u.Role() {
		// no self role changes
		if u.ID() == cmd.Actor.UserID {
			return nil, errors.NewSelfActionError("cannot change your own role")
		}
		if err := u.ChangeRole(authorization.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		hash, err := uc.hasher.Hash(*req.Password)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		u.SetPasswordHash(hash)
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user updated", "user_id", u.ID(), "actor_id", cmd.Actor.UserID)
	result := dto.ToUserDTO(u)
	return &result, nil
}
