package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/setting"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

const (
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
	BulkDelete     = "delete"
)

type BulkCardsCommand struct {
	Actor  authorization.Actor
	IDs    []uint
	Action string
}

// BulkCardsUseCase applies one action to many cards. Eligibility is decided inside the
// mutation transaction, never from an earlier read.
type BulkCardsUseCase struct {
	cards     card.Repository
	events    activationevent.Repository
	txManager TransactionRunner
	settings  SettingReader
	enforcer  permission.PermissionEnforcer
	logger    logger.Interface
}

func NewBulkCardsUseCase(
	cards card.Repository,
	events activationevent.Repository,
	txManager TransactionRunner,
	settings SettingReader,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *BulkCardsUseCase {
	return &BulkCardsUseCase{
		cards:     cards,
		events:    events,
		txManager: txManager,
		settings:  settings,
		enforcer:  enforcer,
		logger:    logger,
	}
}

func (uc *BulkCardsUseCase) Execute(ctx context.Context, cmd BulkCardsCommand) (*dto.BulkResult, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceCard, permvo.ActionBulk); err != nil {
		return nil, err
	}
	switch cmd.Action {
	case BulkActivate, BulkDeactivate, BulkDelete:
	default:
		return nil, errors.NewValidationError("unknown bulk action", cmd.Action)
	}
	ids := uniqueIDs(cmd.IDs)
	if len(ids) == 0 {
		return nil, errors.NewValidationError("no card ids given")
	}

	protect := uc.settings.GetBool(ctx, setting.KeyProtectViewedOnDelete)
	result := &dto.BulkResult{Action: cmd.Action}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cards, err := uc.cards.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load cards: %w", err)
		}
		result.NotFound = len(ids) - len(cards)

		for _, c := range cards {
			applied, err := uc.apply(ctx, c, cmd.Action, protect)
			if err != nil {
				return err
			}
			if applied {
				result.Affected++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("bulk card action failed", "action", cmd.Action, "count", len(ids), "error", err)
		return nil, err
	}

	uc.logger.Infow("bulk card action applied",
		"action", cmd.Action,
		"affected", result.Affected,
		"skipped", result.Skipped,
		"not_found", result.NotFound,
		"protect_viewed", protect,
		"actor_id", cmd.Actor.UserID,
	)
	return result, nil
}

func (uc *BulkCardsUseCase) apply(ctx context.Context, c *card.Card, action string, protect bool) (bool, error) {
	switch action {
	case BulkActivate, BulkDeactivate:
		var changed bool
		if action == BulkActivate {
			changed = c.Activate()
		} else {
			changed = c.Deactivate()
		}
		if !changed {
			return false, nil
		}
		return true, uc.cards.Update(ctx, c)
	default:
		if protect {
			return uc.cards.DeleteIfNoEvents(ctx, c.ID())
		}
		if _, err := uc.events.DeleteByCard(ctx, c.ID()); err != nil {
			return false, fmt.Errorf("failed to delete card events: %w", err)
		}
		return true, uc.cards.Delete(ctx, c.ID())
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
