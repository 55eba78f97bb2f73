package usecases

import (
	"context"
	"time"

	"cardly/internal/application/activationcode/dto"
	"cardly/internal/domain/activationcode"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/setting"
	"cardly/internal/infrastructure/metrics"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/goroutine"
	"cardly/internal/shared/logger"
)

const notifyTimeout = 30 * time.Second

type MarkSoldCommand struct {
	Actor    authorization.Actor
	Code     string
	Customer activationcode.CustomerInfo
	Payment  activationcode.PaymentInfo
}

// MarkSoldUseCase records a completed sale and hands a notification to the mailer.
type MarkSoldUseCase struct {
	repo     activationcode.Repository
	notifier CodeSoldNotifier
	settings SettingReader
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewMarkSoldUseCase(
	repo activationcode.Repository,
	notifier CodeSoldNotifier,
	settings SettingReader,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *MarkSoldUseCase {
	return &MarkSoldUseCase{
		repo:     repo,
		notifier: notifier,
		settings: settings,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *MarkSoldUseCase) Execute(ctx context.Context, cmd MarkSoldCommand) (*dto.ActivationCodeDTO, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceActivationCode, permvo.ActionSell); err != nil {
		return nil, err
	}
	if err := activationcode.ValidateCustomer(cmd.Customer); err != nil {
		return nil, err
	}

	code := activationcode.NormalizeCode(cmd.Code)
	ac, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to get activation code", "code", code, "error", err)
		return nil, err
	}
	if ac == nil {
		return nil, activationcode.NewCodeNotFoundError(code)
	}

	if err := ac.MarkSold(cmd.Customer, cmd.Payment); err != nil {
		uc.logger.Warnw("activation code sale rejected", "code", code, "status", ac.Status(), "error", err)
		return nil, err
	}
	if err := uc.repo.Update(ctx, ac); err != nil {
		uc.logger.Errorw("failed to persist sale", "code", code, "error", err)
		return nil, err
	}

	metrics.IncCodesSold(ac.Plan().String())
	uc.logger.Infow("activation code sold",
		"code", code,
		"plan", ac.Plan(),
		"payment_reference_id", cmd.Payment.ReferenceID,
	)

	uc.notify(ctx, ac)

	result := dto.ToActivationCodeDTO(ac)
	return &result, nil
}

// notify never fails the sale; errors are only logged.
func (uc *MarkSoldUseCase) notify(ctx context.Context, ac *activationcode.ActivationCode) {
	if uc.notifier == nil || !uc.settings.GetBool(ctx, setting.KeyCodeSoldMailEnabled) {
		return
	}

	n := CodeSoldNotification{
		CustomerName:  ac.Customer().Name,
		CustomerEmail: ac.Customer().Email,
		Code:          ac.Code(),
		Plan:          ac.Plan().String(),
		Amount:        ac.Amount().String(),
		SoldAt:        *ac.SoldAt(),
	}
	goroutine.SafeGo(uc.logger, "notify-code-sold", func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyCodeSold(notifyCtx, n); err != nil {
			uc.logger.Warnw("failed to send code sold mail", "code", n.Code, "error", err)
		}
	})
}
