package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/card/dto"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	vo "cardly/internal/domain/card/valueobjects"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/query"
	"cardly/internal/shared/utils"
)

type ListCardsQuery struct {
	Actor         authorization.Actor
	Search        string
	Status        string
	PaymentStatus string
	Plan          string
	OwnerID       *uint
	Page          int
	PerPage       int
	SortBy        string
	SortOrder     string
}

// ListCardsUseCase lists cards with their event counts. Non-admins only see their own.
type ListCardsUseCase struct {
	cards    card.Repository
	events   activationevent.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewListCardsUseCase(
	cards card.Repository,
	events activationevent.Repository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *ListCardsUseCase {
	return &ListCardsUseCase{
		cards:    cards,
		events:   events,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ListCardsUseCase) Execute(ctx context.Context, q ListCardsQuery) (*dto.ListCardsResult, error) {
	if err := permission.Require(uc.enforcer, q.Actor, permvo.ResourceCard, permvo.ActionList); err != nil {
		return nil, err
	}
	if q.Status != "" && !vo.Status(q.Status).IsValid() {
		return nil, errors.NewValidationError("invalid status filter", q.Status)
	}
	if q.PaymentStatus != "" && !vo.PaymentStatus(q.PaymentStatus).IsValid() {
		return nil, errors.NewValidationError("invalid payment status filter", q.PaymentStatus)
	}
	if q.Plan != "" && !sharedvo.Plan(q.Plan).IsValid() {
		return nil, errors.NewValidationError("invalid plan filter", q.Plan)
	}

	ownerID := q.OwnerID
	if !q.Actor.IsAdmin() {
		self := q.Actor.UserID
		ownerID = &self
	}

	p := utils.ValidatePagination(q.Page, q.PerPage)
	cards, total, err := uc.cards.List(ctx, card.ListFilter{
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: p.Page, PageSize: p.PerPage},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
		Search:        q.Search,
		Status:        q.Status,
		PaymentStatus: q.PaymentStatus,
		Plan:          q.Plan,
		OwnerID:       ownerID,
	})
	if err != nil {
		uc.logger.Errorw("failed to list cards", "error", err)
		return nil, err
	}

	ids := make([]uint, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	counts, err := uc.events.CountByCards(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count card events: %w", err)
	}

	items := make([]dto.CardDTO, len(cards))
	for i, c := range cards {
		items[i] = dto.ToCardDTO(c)
		n := counts[c.ID()]
		items[i].EventCount = &n
	}

	return &dto.ListCardsResult{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}, nil
}
