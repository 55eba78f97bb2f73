package mappers

import (
	"fmt"

	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/infrastructure/persistence/models"
)

// ActivationCodeMapper converts between activation code entities and models
type ActivationCodeMapper interface {
	ToEntity(model *models.ActivationCodeModel) (*activationcode.ActivationCode, error)
	ToModel(entity *activationcode.ActivationCode) *models.ActivationCodeModel
	ToEntities(modelList []*models.ActivationCodeModel) ([]*activationcode.ActivationCode, error)
}

type activationCodeMapper struct{}

// NewActivationCodeMapper creates a new ActivationCodeMapper
func NewActivationCodeMapper() ActivationCodeMapper {
	return &activationCodeMapper{}
}

func (m *activationCodeMapper) ToEntity(model *models.ActivationCodeModel) (*activationcode.ActivationCode, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("code %s: %w", model.Code, err)
	}
	plan, err := sharedvo.NewPlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("code %s: %w", model.Code, err)
	}

	return activationcode.ReconstructActivationCode(activationcode.ReconstructParams{
		ID:     model.ID,
		Code:   model.Code,
		Status: status,
		Plan:   plan,
		Amount: sharedvo.NewMoney(model.AmountCents, model.Currency),
		Customer: activationcode.CustomerInfo{
			Name:  derefString(model.CustomerName),
			Email: derefString(model.CustomerEmail),
			Phone: derefString(model.CustomerPhone),
		},
		Payment: activationcode.PaymentInfo{
			Method:      derefString(model.PaymentMethod),
			ReferenceID: derefString(model.PaymentReferenceID),
		},
		SoldAt:      model.SoldAt,
		ActivatedAt: model.ActivatedAt,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	})
}

func (m *activationCodeMapper) ToModel(entity *activationcode.ActivationCode) *models.ActivationCodeModel {
	if entity == nil {
		return nil
	}

	customer := entity.Customer()
	payment := entity.Payment()
	return &models.ActivationCodeModel{
		ID:                 entity.ID(),
		Code:               entity.Code(),
		Status:             entity.Status().String(),
		Plan:               entity.Plan().String(),
		AmountCents:        entity.Amount().AmountInCents(),
		Currency:           entity.Amount().Currency(),
		CustomerName:       stringPtr(customer.Name),
		CustomerEmail:      stringPtr(customer.Email),
		CustomerPhone:      stringPtr(customer.Phone),
		PaymentMethod:      stringPtr(payment.Method),
		PaymentReferenceID: stringPtr(payment.ReferenceID),
		SoldAt:             entity.SoldAt(),
		ActivatedAt:        entity.ActivatedAt(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *activationCodeMapper) ToEntities(modelList []*models.ActivationCodeModel) ([]*activationcode.ActivationCode, error) {
	entities := make([]*activationcode.ActivationCode, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
