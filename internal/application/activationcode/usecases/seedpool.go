package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/activationcode/dto"
	"cardly/internal/domain/activationcode"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/setting"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

const MaxSeedBatch = 1000

type SeedPoolCommand struct {
	Actor authorization.Actor
	Count int
	Plan  string
	// AmountCents falls back to the codes.default_amount_cents setting when nil.
	AmountCents *int64
	Currency    string
}

// SeedPoolUseCase adds a batch of available codes to the ledger.
type SeedPoolUseCase struct {
	repo      activationcode.Repository
	generator *CodeGenerator
	txManager TransactionRunner
	settings  SettingReader
	enforcer  permission.PermissionEnforcer
	logger    logger.Interface
}

func NewSeedPoolUseCase(
	repo activationcode.Repository,
	generator *CodeGenerator,
	txManager TransactionRunner,
	settings SettingReader,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *SeedPoolUseCase {
	return &SeedPoolUseCase{
		repo:      repo,
		generator: generator,
		txManager: txManager,
		settings:  settings,
		enforcer:  enforcer,
		logger:    logger,
	}
}

func (uc *SeedPoolUseCase) Execute(ctx context.Context, cmd SeedPoolCommand) (*dto.SeedPoolResult, error) {
	if err := permission.Require(uc.enforcer, cmd.Actor, permvo.ResourceActivationCode, permvo.ActionCreate); err != nil {
		return nil, err
	}
	if cmd.Count < 1 || cmd.Count > MaxSeedBatch {
		return nil, errors.NewValidationError(fmt.Sprintf("count must be between 1 and %d", MaxSeedBatch))
	}
	plan, err := sharedvo.NewPlan(cmd.Plan)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", cmd.Plan)
	}

	var cents int64
	if cmd.AmountCents != nil {
		cents = *cmd.AmountCents
	} else {
		cents = int64(uc.settings.GetInt(ctx, setting.KeyDefaultCodeAmount))
	}
	amount := sharedvo.NewMoney(cents, cmd.Currency)
	if amount.IsNegative() {
		return nil, errors.NewValidationError("amount cannot be negative")
	}

	uc.logger.Infow("seeding activation codes", "count", cmd.Count, "plan", plan, "amount", amount.String())

	reserved := make(map[string]struct{}, cmd.Count)
	codes := make([]*activationcode.ActivationCode, 0, cmd.Count)
	for i := 0; i < cmd.Count; i++ {
		token, err := uc.generator.generate(ctx, reserved)
		if err != nil {
			return nil, err
		}
		reserved[token] = struct{}{}

		ac, err := activationcode.NewActivationCode(token, plan, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to build activation code: %w", err)
		}
		codes = append(codes, ac)
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.CreateBatch(ctx, codes)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist activation codes", "count", cmd.Count, "error", err)
		return nil, err
	}

	result := &dto.SeedPoolResult{Created: len(codes), Codes: make([]string, 0, len(codes))}
	for _, c := range codes {
		result.Codes = append(result.Codes, c.Code())
	}

	uc.logger.Infow("activation codes seeded", "created", result.Created, "plan", plan)
	return result, nil
}
