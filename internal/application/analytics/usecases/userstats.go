package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/analytics/dto"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

type UserStatsUseCase struct {
	cards    card.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewUserStatsUseCase(cards card.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *UserStatsUseCase {
	return &UserStatsUseCase{
		cards:    cards,
		enforcer: enforcer,
		logger:   logger,
	}
}

// Execute aggregates the cards owned by userID. Non-admins may only ask about themselves.
func (uc *UserStatsUseCase) Execute(ctx context.Context, actor authorization.Actor, userID uint) (*dto.UserStatsDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceAnalytics, permvo.ActionRead); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, errors.NewForbiddenError("cannot read another user's statistics")
	}

	cards, err := uc.cards.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user cards: %w", err)
	}

	stats := &dto.UserStatsDTO{TotalCards: int64(len(cards))}
	var top *card.Card
	for _, c := range cards {
		if c.Status().IsActivated() {
			stats.ActiveCards++
		} else {
			stats.PendingCards++
		}
		stats.TotalViews += c.ClickCount()
		if top == nil || c.ClickCount() > top.ClickCount() {
			top = c
		}
	}
	stats.AverageViews = averageViews(stats.TotalViews, stats.TotalCards)
	if top != nil {
		stats.MostViewed = &dto.CardSummaryDTO{
			ID:    top.ID(),
			Name:  top.Name(),
			Slug:  top.Slug(),
			Views: top.ClickCount(),
		}
	}
	return stats, nil
}

// averageViews rounds half up to one decimal; no cards averages to zero.
func averageViews(total, count int64) float64 {
	if count == 0 {
		return 0
	}
	// integer arithmetic keeps 0.x5 boundaries exact
	tenths := (total*100/count + 5) / 10
	return float64(tenths) / 10
}
