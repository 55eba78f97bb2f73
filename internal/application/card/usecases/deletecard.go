package usecases

import (
	"context"
	"fmt"

	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

// DeleteCardUseCase hard-deletes one card together with its activation events.
type DeleteCardUseCase struct {
	cards     card.Repository
	events    activationevent.Repository
	txManager TransactionRunner
	enforcer  permission.PermissionEnforcer
	logger    logger.Interface
}

func NewDeleteCardUseCase(
	cards card.Repository,
	events activationevent.Repository,
	txManager TransactionRunner,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		cards:     cards,
		events:    events,
		txManager: txManager,
		enforcer:  enforcer,
		logger:    logger,
	}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, actor authorization.Actor, cardID uint) error {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceCard, permvo.ActionDelete); err != nil {
		return err
	}

	var removedEvents int64
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadCard(ctx, uc.cards, cardID); err != nil {
			return err
		}
		n, err := uc.events.DeleteByCard(ctx, cardID)
		if err != nil {
			return fmt.Errorf("failed to delete card events: %w", err)
		}
		removedEvents = n
		return uc.cards.Delete(ctx, cardID)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("card deleted",
		"card_id", cardID,
		"events_removed", removedEvents,
		"actor_id", actor.UserID,
	)
	return nil
}
