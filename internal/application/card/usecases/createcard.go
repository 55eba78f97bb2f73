package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/id"
	"cardly/internal/shared/logger"
)

type CreateCardCommand struct {
	Actor   authorization.Actor
	Request dto.CreateCardRequest
}

// CreateCardUseCase issues a new card, redeeming an activation code when one is given.
type CreateCardUseCase struct {
	cards     card.Repository
	users     user.Repository
	redeemer  CodeRedeemer
	txManager TransactionRunner
	ids       identifierGenerator
	enforcer  permission.PermissionEnforcer
	logger    logger.Interface
}

func NewCreateCardUseCase(
	cards card.Repository,
	users user.Repository,
	redeemer CodeRedeemer,
	txManager TransactionRunner,
	maxAttempts int,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *CreateCardUseCase {
	return &CreateCardUseCase{
		cards:     cards,
		users:     users,
		redeemer:  redeemer,
		txManager: txManager,
		ids:       identifierGenerator{cards: cards, maxAttempts: maxAttempts},
		enforcer:  enforcer,
		logger:    logger,
	}
}

func (uc *CreateCardUseCase) Execute(ctx context.Context, cmd CreateCardCommand) (*dto.CardDTO, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceCard, permvo.ActionCreate); err != nil {
		return nil, err
	}
	req := cmd.Request
	activationCode := strings.TrimSpace(req.ActivationCode)

	ownerID, err := uc.resolveOwner(ctx, cmd.Actor, req.OwnerID, activationCode)
	if err != nil {
		return nil, err
	}

	plan := sharedvo.PlanBasic
	if req.Plan != "" {
		if plan, err = sharedvo.NewPlan(req.Plan); err != nil {
			return nil, errors.NewValidationError("invalid plan", req.Plan)
		}
	}

	slug, err := uc.ids.slug(ctx, req.Name)
	if err != nil {
		return nil, uc.identifierError("slug", err)
	}
	code, err := uc.ids.code(ctx)
	if err != nil {
		return nil, uc.identifierError("code", err)
	}

	profile := card.Profile{
		JobTitle: strings.TrimSpace(req.JobTitle),
		Company:  strings.TrimSpace(req.Company),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		Website:  strings.TrimSpace(req.Website),
		Bio:      strings.TrimSpace(req.Bio),
		Location: strings.TrimSpace(req.Location),
	}
	c, err := card.NewCard(ownerID, req.Name, profile, plan, slug, code)
	if err != nil {
		return nil, err
	}
	if len(req.SocialLinks) > 0 || req.ColorTheme != "" {
		patch := card.ProfilePatch{SocialLinks: req.SocialLinks}
		if req.ColorTheme != "" {
			patch.ColorTheme = &req.ColorTheme
		}
		if err := c.ApplyProfile(patch); err != nil {
			return nil, err
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if activationCode != "" {
			ac, err := uc.redeemer.Execute(ctx, activationCode)
			if err != nil {
				return err
			}
			c.ActivateWithCode(ac.Code(), ac.Plan())
		} else if req.Activate && cmd.Actor.IsAdmin() {
			c.Activate()
		}
		return uc.cards.Create(ctx, c)
	})
	if err != nil {
		uc.logger.Warnw("card creation failed",
			"actor_id", cmd.Actor.UserID,
			"with_code", activationCode != "",
			"error", err,
		)
		return nil, err
	}

	uc.logger.Infow("card created",
		"card_id", c.ID(),
		"slug", c.Slug(),
		"status", c.Status(),
		"actor_id", cmd.Actor.UserID,
	)
	result := dto.ToCardDTO(c)
	return &result, nil
}

// resolveOwner picks the owning user. Non-admins always own what they create and can
// only create through an activation code.
func (uc *CreateCardUseCase) resolveOwner(ctx context.Context, actor authorization.Actor, requested *uint, activationCode string) (*uint, error) {
	if !actor.IsAdmin() {
		if requested != nil && *requested != actor.UserID {
			return nil, errors.NewForbiddenError("cannot create a card for another user")
		}
		if activationCode == "" {
			return nil, errors.NewValidationError("activation code is required")
		}
		owner := actor.UserID
		return &owner, nil
	}

	if requested == nil || *requested == 0 {
		return nil, nil
	}
	u, err := uc.users.GetByID(ctx, *requested)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("owner not found", fmt.Sprintf("id=%d", *requested))
	}
	owner := u.ID()
	return &owner, nil
}

func (uc *CreateCardUseCase) identifierError(kind string, err error) error {
	if stderrors.Is(err, id.ErrSpaceExhausted) {
		uc.logger.Errorw("card identifier space exhausted", "kind", kind, "error", err)
		return errors.NewInternalError("code space exhausted")
	}
	return fmt.Errorf("failed to generate card %s: %w", kind, err)
}
