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

type CreateUserCommand struct {
	Actor   authorization.Actor
	Request dto.CreateUserRequest
}

// CreateUserUseCase handles admin account creation
type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceUser, permvo.ActionCreate); err != nil {
		return nil, err
	}
	req := cmd.Request

	role := authorization.RoleClient
	if req.Role != "" {
		role = authorization.UserRole(req.Role)
	}
	if err := ensureEmailFree(ctx, uc.userRepo, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	u, err := user.NewUser(req.Name, req.Email, hash, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "email", u.Email(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user created", "user_id", u.ID(), "role", role, "actor_id", cmd.Actor.UserID)
	result := dto.ToUserDTO(u)
	return &result, nil
}
