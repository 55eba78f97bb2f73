package usecases

import (
	"context"
	"fmt"

	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/infrastructure/metrics"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

type RecordViewCommand struct {
	// Lookup is a slug or an all-digit legacy code.
	Lookup string
	Meta   activationevent.RequestMeta
}

// RecordViewUseCase counts a public view and logs the matching activation event in one
// transaction, so click_count and the event log never drift apart.
type RecordViewUseCase struct {
	cards     card.Repository
	events    activationevent.Repository
	txManager TransactionRunner
	logger    logger.Interface
}

func NewRecordViewUseCase(
	cards card.Repository,
	events activationevent.Repository,
	txManager TransactionRunner,
	logger logger.Interface,
) *RecordViewUseCase {
	return &RecordViewUseCase{
		cards:     cards,
		events:    events,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RecordViewUseCase) Execute(ctx context.Context, cmd RecordViewCommand) (*card.Card, error) {
	lookup := normalizeLookup(cmd.Lookup)
	kind := "slug"
	if isLegacyCode(lookup) {
		kind = "code"
	}

	var c *card.Card
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if kind == "code" {
			c, err = uc.cards.GetByCode(ctx, lookup)
		} else {
			c, err = uc.cards.GetBySlug(ctx, lookup)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve card: %w", err)
		}
		// pending and expired cards are indistinguishable from missing ones
		if c == nil || !c.IsPubliclyVisible(biztime.NowUTC()) {
			return errors.NewNotFoundError("card not found")
		}

		if err := uc.cards.IncrementClickCount(ctx, c.ID()); err != nil {
			return err
		}
		event, err := activationevent.NewActivationEvent(c.ID(), cmd.Meta)
		if err != nil {
			return err
		}
		return uc.events.Append(ctx, event)
	})
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to record card view", "lookup", lookup, "error", err)
		}
		return nil, err
	}

	metrics.IncCardView(kind)
	return c, nil
}
