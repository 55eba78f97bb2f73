package usecases

import (
	"context"

	"cardly/internal/application/activationcode/dto"
	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/infrastructure/metrics"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

type CodeStatsUseCase struct {
	repo     activationcode.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewCodeStatsUseCase(repo activationcode.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *CodeStatsUseCase {
	return &CodeStatsUseCase{
		repo:     repo,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *CodeStatsUseCase) Execute(ctx context.Context, actor authorization.Actor) (*dto.CodeStatsDTO, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceActivationCode, permvo.ActionRead); err != nil {
		return nil, err
	}

	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to compute activation code stats", "error", err)
		return nil, err
	}

	metrics.SetCodesByStatus(map[string]int64{
		vo.StatusAvailable.String(): stats.Available,
		vo.StatusSold.String():      stats.Sold,
		vo.StatusActivated.String(): stats.Activated,
	})

	return &dto.CodeStatsDTO{
		Total:            stats.Total(),
		Available:        stats.Available,
		Sold:             stats.Sold,
		Activated:        stats.Activated,
		SoldRevenueCents: stats.SoldRevenueCents,
		SoldRevenue:      sharedvo.NewMoney(stats.SoldRevenueCents, "").String(),
	}, nil
}
