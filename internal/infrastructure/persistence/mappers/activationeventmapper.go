package mappers

import (
	"cardly/internal/domain/activationevent"
	vo "cardly/internal/domain/activationevent/valueobjects"
	"cardly/internal/infrastructure/persistence/models"
)

// ActivationEventMapper converts between activation events and models
type ActivationEventMapper interface {
	ToEntity(model *models.ActivationEventModel) *activationevent.ActivationEvent
	ToModel(entity *activationevent.ActivationEvent) *models.ActivationEventModel
	ToEntities(modelList []*models.ActivationEventModel) []*activationevent.ActivationEvent
}

type activationEventMapper struct{}

// NewActivationEventMapper creates a new ActivationEventMapper
func NewActivationEventMapper() ActivationEventMapper {
	return &activationEventMapper{}
}

func (m *activationEventMapper) ToEntity(model *models.ActivationEventModel) *activationevent.ActivationEvent {
	if model == nil {
		return nil
	}
	// a NULL device type is classified from the user agent on read
	return activationevent.ReconstructActivationEvent(
		model.ID,
		model.CardID,
		model.IPAddress,
		model.UserAgent,
		model.Location,
		vo.DeviceType(derefString(model.DeviceType)),
		model.Referrer,
		model.CreatedAt,
	)
}

func (m *activationEventMapper) ToModel(entity *activationevent.ActivationEvent) *models.ActivationEventModel {
	if entity == nil {
		return nil
	}
	return &models.ActivationEventModel{
		ID:         entity.ID(),
		CardID:     entity.CardID(),
		IPAddress:  entity.IP(),
		UserAgent:  entity.UserAgent(),
		Location:   entity.Location(),
		DeviceType: stringPtr(entity.StoredDevice().String()),
		Referrer:   entity.Referrer(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func (m *activationEventMapper) ToEntities(modelList []*models.ActivationEventModel) []*activationevent.ActivationEvent {
	entities := make([]*activationevent.ActivationEvent, 0, len(modelList))
	for _, model := range modelList {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
