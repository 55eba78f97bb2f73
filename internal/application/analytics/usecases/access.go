package usecases

import (
	"context"
	"fmt"

	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
)

// authorizeCard checks the capability and then that a non-admin owns the card.
func authorizeCard(ctx context.Context, enforcer permission.PermissionEnforcer, cards card.Repository, actor authorization.Actor, action permvo.Action, cardID uint) (*card.Card, error) {
	if err := permission.Require(enforcer, actor, permvo.ResourceAnalytics, action); err != nil {
		return nil, err
	}
	c, err := cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("card not found", fmt.Sprintf("id=%d", cardID))
	}
	if !actor.CanAccessOwned(c.OwnerID()) {
		return nil, errors.NewForbiddenError("card belongs to another user")
	}
	return c, nil
}
