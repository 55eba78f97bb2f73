package usecases

import (
	"context"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/card"
	vo "cardly/internal/domain/card/valueobjects"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

type UpdateCardCommand struct {
	Actor   authorization.Actor
	CardID  uint
	Request dto.UpdateCardRequest
}

type UpdateCardUseCase struct {
	cards    card.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewUpdateCardUseCase(cards card.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cards:    cards,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *UpdateCardUseCase) Execute(ctx context.Context, cmd UpdateCardCommand) (*dto.CardDTO, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceCard, permvo.ActionUpdate); err != nil {
		return nil, err
	}

	c, err := loadCard(ctx, uc.cards, cmd.CardID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(cmd.Actor, c); err != nil {
		return nil, err
	}
	req := cmd.Request
	if req.HasAdminFields() && !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("plan, payment status and expiry are admin only")
	}

	err = c.ApplyProfile(card.ProfilePatch{
		Name:        req.Name,
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Bio:         req.Bio,
		Location:    req.Location,
		ColorTheme:  req.ColorTheme,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		return nil, err
	}

	if req.Plan != nil {
		if err := c.ChangePlan(sharedvo.Plan(*req.Plan)); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := c.ChangePaymentStatus(vo.PaymentStatus(*req.PaymentStatus)); err != nil {
			return nil, err
		}
	}
	if req.ClearExpiry {
		c.SetExpiresAt(nil)
	} else if req.ExpiresAt != nil {
		at := req.ExpiresAt.UTC()
		c.SetExpiresAt(&at)
	}

	if err := uc.cards.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update card", "card_id", c.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("card updated", "card_id", c.ID(), "actor_id", cmd.Actor.UserID)
	result := dto.ToCardDTO(c)
	return &result, nil
}
