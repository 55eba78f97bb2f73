package usecases

import (
	"context"

	"cardly/internal/application/activationcode/dto"
	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/mapper"
	"cardly/internal/shared/query"
	"cardly/internal/shared/utils"
)

type ListCodesQuery struct {
	Actor     authorization.Actor
	Status    string
	Plan      string
	Search    string
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

type ListCodesUseCase struct {
	repo     activationcode.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewListCodesUseCase(repo activationcode.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *ListCodesUseCase {
	return &ListCodesUseCase{
		repo:     repo,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ListCodesUseCase) Execute(ctx context.Context, q ListCodesQuery) (*dto.ListCodesResult, error) {
	if err := permission.Require(uc.enforcer, q.Actor, permvo.ResourceActivationCode, permvo.ActionList); err != nil {
		return nil, err
	}
	if q.Status != "" && !vo.Status(q.Status).IsValid() {
		return nil, errors.NewValidationError("invalid status filter", q.Status)
	}
	if q.Plan != "" && !sharedvo.Plan(q.Plan).IsValid() {
		return nil, errors.NewValidationError("invalid plan filter", q.Plan)
	}

	p := utils.ValidatePagination(q.Page, q.PerPage)
	filter := activationcode.ListFilter{
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: p.Page, PageSize: p.PerPage},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
		Status: q.Status,
		Plan:   q.Plan,
		Search: q.Search,
	}

	codes, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list activation codes", "error", err)
		return nil, err
	}

	return &dto.ListCodesResult{
		Items:   mapper.MapSlice(codes, dto.ToActivationCodeDTO),
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}, nil
}
