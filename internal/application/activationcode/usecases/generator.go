package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"cardly/internal/domain/activationcode"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/id"
	"cardly/internal/shared/logger"
)

const (
	DefaultCodeLength  = 8
	DefaultMaxAttempts = 10
)

// CodeGenerator draws activation codes not yet present in the ledger.
type CodeGenerator struct {
	repo        activationcode.Repository
	length      int
	maxAttempts int
	logger      logger.Interface
}

func NewCodeGenerator(repo activationcode.Repository, length, maxAttempts int, logger logger.Interface) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CodeGenerator{
		repo:        repo,
		length:      length,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	return g.generate(ctx, nil)
}

// generate also treats codes in reserved as taken, for batches not yet persisted.
func (g *CodeGenerator) generate(ctx context.Context, reserved map[string]struct{}) (string, error) {
	code, err := id.GenerateUnique(ctx, g.maxAttempts,
		func() (string, error) { return id.NewCode(g.length) },
		func(ctx context.Context, code string) (bool, error) {
			if _, ok := reserved[code]; ok {
				return true, nil
			}
			return g.repo.ExistsByCode(ctx, code)
		},
	)
	if stderrors.Is(err, id.ErrSpaceExhausted) {
		g.logger.Errorw("activation code space exhausted, check codes.length",
			"length", g.length,
			"max_attempts", g.maxAttempts,
		)
		return "", errors.NewInternalError("code space exhausted")
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate activation code: %w", err)
	}
	return code, nil
}
