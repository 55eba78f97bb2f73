package usecases

import (
	"context"
	"strings"

	codedto "cardly/internal/application/activationcode/dto"
	codeUsecases "cardly/internal/application/activationcode/usecases"
	"cardly/internal/domain/activationcode"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

// PaymentCompletedEvent is the payload the payment collaborator posts once a
// customer has paid for an activation code.
type PaymentCompletedEvent struct {
	Code          string
	Status        string
	Method        string
	ReferenceID   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Outcome of a webhook delivery.
const (
	OutcomeSold             = "sold"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeIgnored          = "ignored"
)

// CodeSeller is satisfied by the activation code MarkSold use case.
type CodeSeller interface {
	Execute(ctx context.Context, cmd codeUsecases.MarkSoldCommand) (*codedto.ActivationCodeDTO, error)
}

// CodeReader looks codes up to spot redelivered webhooks.
type CodeReader interface {
	GetByCode(ctx context.Context, code string) (*activationcode.ActivationCode, error)
}

type HandlePaymentCompletedUseCase struct {
	codes  CodeReader
	seller CodeSeller
	logger logger.Interface
}

func NewHandlePaymentCompletedUseCase(codes CodeReader, seller CodeSeller, logger logger.Interface) *HandlePaymentCompletedUseCase {
	return &HandlePaymentCompletedUseCase{
		codes:  codes,
		seller: seller,
		logger: logger,
	}
}

func isPaidStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid", "completed", "success":
		return true
	}
	return false
}

// Execute marks the code sold on behalf of the payment collaborator. A redelivery
// carrying the reference of the sale already recorded is acknowledged without change.
func (uc *HandlePaymentCompletedUseCase) Execute(ctx context.Context, event PaymentCompletedEvent) (string, error) {
	if !isPaidStatus(event.Status) {
		uc.logger.Infow("payment event ignored", "code", event.Code, "status", event.Status)
		return OutcomeIgnored, nil
	}
	if strings.TrimSpace(event.Code) == "" {
		return "", errors.NewValidationError("code is required")
	}
	if strings.TrimSpace(event.ReferenceID) == "" {
		return "", errors.NewValidationError("payment reference is required")
	}

	existing, err := uc.codes.GetByCode(ctx, activationcode.NormalizeCode(event.Code))
	if err != nil {
		return "", err
	}
	if existing != nil && existing.Status().HasBeenSold() && existing.Payment().ReferenceID == event.ReferenceID {
		uc.logger.Infow("payment already processed", "code", existing.Code(), "reference_id", event.ReferenceID)
		return OutcomeAlreadyProcessed, nil
	}

	_, err = uc.seller.Execute(ctx, codeUsecases.MarkSoldCommand{
		Actor: authorization.SystemActor(),
		Code:  event.Code,
		Customer: activationcode.CustomerInfo{
			Name:  event.CustomerName,
			Email: event.CustomerEmail,
			Phone: event.CustomerPhone,
		},
		Payment: activationcode.PaymentInfo{
			Method:      event.Method,
			ReferenceID: event.ReferenceID,
		},
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment", "code", event.Code, "reference_id", event.ReferenceID, "error", err)
		return "", err
	}

	uc.logger.Infow("payment processed successfully", "code", event.Code, "reference_id", event.ReferenceID, "method", event.Method)
	return OutcomeSold, nil
}
