package usecases

import (
	"context"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

type ToggleCardStatusUseCase struct {
	cards    card.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewToggleCardStatusUseCase(cards card.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *ToggleCardStatusUseCase {
	return &ToggleCardStatusUseCase{
		cards:    cards,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ToggleCardStatusUseCase) Execute(ctx context.Context, actor authorization.Actor, cardID uint) (*dto.CardDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceCard, permvo.ActionToggle); err != nil {
		return nil, err
	}

	c, err := loadCard(ctx, uc.cards, cardID)
	if err != nil {
		return nil, err
	}

	from := c.Status()
	to := c.ToggleStatus()
	if err := uc.cards.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to persist card status", "card_id", cardID, "error", err)
		return nil, err
	}

	// audit
	uc.logger.Infow("card status toggled",
		"card_id", cardID,
		"from", from,
		"to", to,
		"actor_id", actor.UserID,
	)
	result := dto.ToCardDTO(c)
	return &result, nil
}
