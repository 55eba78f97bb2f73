package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"cardly/internal/domain/card"
	vo "cardly/internal/domain/card/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/infrastructure/persistence/models"
)

// CardMapper converts between card entities and models
type CardMapper interface {
	ToEntity(model *models.CardModel) (*card.Card, error)
	ToModel(entity *card.Card) *models.CardModel
	ToEntities(modelList []*models.CardModel) ([]*card.Card, error)
}

type cardMapper struct{}

// NewCardMapper creates a new CardMapper
func NewCardMapper() CardMapper {
	return &cardMapper{}
}

func (m *cardMapper) ToEntity(model *models.CardModel) (*card.Card, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", model.ID, err)
	}
	paymentStatus, err := vo.NewPaymentStatus(model.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", model.ID, err)
	}
	plan, err := sharedvo.NewPlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", model.ID, err)
	}

	return card.ReconstructCard(card.ReconstructParams{
		ID:      model.ID,
		OwnerID: model.UserID,
		Name:    model.Name,
		Profile: card.Profile{
			JobTitle: model.JobTitle,
			Company:  model.Company,
			Phone:    model.Phone,
			Email:    model.Email,
			Website:  model.Website,
			Bio:      model.Bio,
			Location: model.Location,
		},
		SocialLinks:    model.SocialLinks.Data(),
		ColorTheme:     model.ColorTheme,
		Plan:           plan,
		Status:         status,
		PaymentStatus:  paymentStatus,
		Slug:           model.UniqueSlug,
		Code:           model.Code,
		ClickCount:     model.ClickCount,
		AnalyticsData:  map[string]any(model.AnalyticsData),
		ActivationCode: model.ActivationCode,
		PurchasedAt:    model.PurchasedAt,
		ActivatedAt:    model.ActivatedAt,
		ExpiresAt:      model.ExpiresAt,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}), nil
}

func (m *cardMapper) ToModel(entity *card.Card) *models.CardModel {
	if entity == nil {
		return nil
	}

	profile := entity.Profile()
	links := entity.SocialLinks()
	if links == nil {
		links = map[string]string{}
	}
	return &models.CardModel{
		ID:             entity.ID(),
		UserID:         entity.OwnerID(),
		Name:           entity.Name(),
		JobTitle:       profile.JobTitle,
		Company:        profile.Company,
		Phone:          profile.Phone,
		Email:          profile.Email,
		Website:        profile.Website,
		Bio:            profile.Bio,
		Location:       profile.Location,
		SocialLinks:    datatypes.NewJSONType(links),
		ColorTheme:     entity.ColorTheme(),
		Plan:           entity.Plan().String(),
		Status:         entity.Status().String(),
		PaymentStatus:  entity.PaymentStatus().String(),
		UniqueSlug:     entity.Slug(),
		Code:           entity.Code(),
		ClickCount:     entity.ClickCount(),
		AnalyticsData:  datatypes.JSONMap(entity.AnalyticsData()),
		ActivationCode: entity.ActivationCode(),
		PurchasedAt:    entity.PurchasedAt(),
		ActivatedAt:    entity.ActivatedAt(),
		ExpiresAt:      entity.ExpiresAt(),
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}

func (m *cardMapper) ToEntities(modelList []*models.CardModel) ([]*card.Card, error) {
	entities := make([]*card.Card, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
