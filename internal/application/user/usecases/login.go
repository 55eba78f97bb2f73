package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/user/dto"
	"cardly/internal/domain/user"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher user.PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.LoginResponse, error) {
	email := user.NormalizeEmail(cmd.Email)
	invalid := errors.NewUnauthorizedError("invalid email or password")

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		uc.logger.Warnw("login for unknown email", "email", email, "ip", cmd.IPAddress)
		return nil, invalid
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login with wrong password", "user_id", u.ID(), "ip", cmd.IPAddress)
		return nil, invalid
	}
	if !u.IsActive() {
		uc.logger.Warnw("login for inactive user", "user_id", u.ID(), "ip", cmd.IPAddress)
		return nil, errors.NewForbiddenError("account is inactive")
	}

	token, err := uc.tokens.Issue(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", u.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "ip", cmd.IPAddress)
	return &dto.LoginResponse{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
		User:        dto.ToUserDTO(u),
	}, nil
}
