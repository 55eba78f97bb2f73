package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/user/dto"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

const (
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
	BulkDelete     = "delete"
)

type BulkUsersCommand struct {
	Actor  authorization.Actor
	IDs    []uint
	Action string
}

// BulkUsersUseCase applies one action to many accounts. The actor is always removed from
// the batch first; delete skips owners of cards, re-checked by the DELETE itself.
type BulkUsersUseCase struct {
	userRepo  user.Repository
	txManager TransactionRunner
	enforcer  permission.PermissionEnforcer
	logger    logger.Interface
}

func NewBulkUsersUseCase(
	userRepo user.Repository,
	txManager TransactionRunner,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *BulkUsersUseCase {
	return &BulkUsersUseCase{
		userRepo:  userRepo,
		txManager: txManager,
		enforcer:  enforcer,
		logger:    logger,
	}
}

func (uc *BulkUsersUseCase) Execute(ctx context.Context, cmd BulkUsersCommand) (*dto.BulkUsersResult, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceUser, permvo.ActionBulk); err != nil {
		return nil, err
	}
	switch cmd.Action {
	case BulkActivate, BulkDeactivate, BulkDelete:
	default:
		return nil, errors.NewValidationError("unknown bulk action", cmd.Action)
	}

	ids, selfExcluded := excludeSelf(cmd.IDs, cmd.Actor.UserID)
	if len(ids) == 0 {
		if selfExcluded {
			return nil, errors.NewSelfActionError("cannot apply a bulk action to your own account")
		}
		return nil, errors.NewValidationError("no user ids given")
	}

	result := &dto.BulkUsersResult{Action: cmd.Action, SelfExcluded: selfExcluded}
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.userRepo.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		targets := make([]uint, 0, len(existing))
		for _, u := range existing {
			targets = append(targets, u.ID())
		}

		switch cmd.Action {
		case BulkActivate, BulkDeactivate:
			n, err := uc.userRepo.SetActiveByIDs(ctx, targets, cmd.Action == BulkActivate)
			if err != nil {
				return err
			}
			result.Affected = n
		case BulkDelete:
			for _, id := range targets {
				deleted, err := uc.userRepo.DeleteIfNoCards(ctx, id)
				if err != nil {
					return err
				}
				if deleted {
					result.Affected++
				}
			}
		}
		result.Skipped = int64(len(ids)) - result.Affected
		return nil
	})
	if err != nil {
		uc.logger.Errorw("bulk user action failed", "action", cmd.Action, "count", len(ids), "error", err)
		return nil, err
	}

	uc.logger.Infow("bulk user action applied",
		"action", cmd.Action,
		"affected", result.Affected,
		"skipped", result.Skipped,
		"self_excluded", selfExcluded,
		"actor_id", cmd.Actor.UserID,
	)
	return result, nil
}

// excludeSelf drops the actor, zero ids and duplicates.
func excludeSelf(ids []uint, self uint) ([]uint, bool) {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	excluded := false
	for _, id := range ids {
		if id == self && self != 0 {
			excluded = true
			continue
		}
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, excluded
}
