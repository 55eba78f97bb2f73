package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

type GetCardUseCase struct {
	cards    card.Repository
	events   activationevent.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewGetCardUseCase(
	cards card.Repository,
	events activationevent.Repository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *GetCardUseCase {
	return &GetCardUseCase{
		cards:    cards,
		events:   events,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *GetCardUseCase) Execute(ctx context.Context, actor authorization.Actor, cardID uint) (*dto.CardDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceCard, permvo.ActionRead); err != nil {
		return nil, err
	}

	c, err := loadCard(ctx, uc.cards, cardID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(actor, c); err != nil {
		return nil, err
	}

	n, err := uc.events.CountByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to count card events: %w", err)
	}

	result := dto.ToCardDTO(c)
	result.EventCount = &n
	return &result, nil
}
