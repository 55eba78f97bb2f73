package usecases

import (
	"context"

	"cardly/internal/shared/authorization"
)

type AccessToken struct {
	Token     string
	ExpiresIn int64
}

type TokenIssuer interface {
	Issue(userID uint, role authorization.UserRole) (*AccessToken, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
