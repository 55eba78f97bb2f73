package usecases

import (
	"context"
	"fmt"

	"cardly/internal/domain/user"
	"cardly/internal/shared/errors"
)

func loadUser(ctx context.Context, repo user.Repository, userID uint) (*user.User, error) {
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", userID))
	}
	return u, nil
}

// ensureEmailFree rejects an email already used by another account.
func ensureEmailFree(ctx context.Context, repo user.Repository, email string, selfID uint) error {
	existing, err := repo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID() != selfID {
		return errors.NewConflictError("email already in use", user.NormalizeEmail(email))
	}
	return nil
}
