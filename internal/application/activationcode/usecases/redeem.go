package usecases

import (
	"context"

	"cardly/internal/domain/activationcode"
	"cardly/internal/infrastructure/metrics"
	"cardly/internal/shared/db"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

// RedeemCodeUseCase consumes a sold code. It only runs inside the caller's
// transaction so a failed card insert rolls the redemption back.
type RedeemCodeUseCase struct {
	repo   activationcode.Repository
	logger logger.Interface
}

func NewRedeemCodeUseCase(repo activationcode.Repository, logger logger.Interface) *RedeemCodeUseCase {
	return &RedeemCodeUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *RedeemCodeUseCase) Execute(ctx context.Context, code string) (*activationcode.ActivationCode, error) {
	if !db.InTransaction(ctx) {
		uc.logger.Errorw("activation code redeemed outside a transaction", "code", code)
		return nil, errors.NewInternalError("redeem requires a transaction")
	}

	code = activationcode.NormalizeCode(code)
	ac, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ac == nil {
		return nil, activationcode.NewCodeNotFoundError(code)
	}

	if err := ac.Redeem(); err != nil {
		uc.logger.Warnw("activation code redemption rejected", "code", code, "status", ac.Status())
		return nil, err
	}
	if err := uc.repo.Update(ctx, ac); err != nil {
		return nil, err
	}

	metrics.IncCodesRedeemed(ac.Plan().String())
	uc.logger.Infow("activation code redeemed", "code", code, "plan", ac.Plan())
	return ac, nil
}
