package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cardly/internal/domain/activationevent"
	"cardly/internal/infrastructure/persistence/mappers"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/db"
	"cardly/internal/shared/logger"
)

// ActivationEventRepository implements activationevent.Repository. It never updates rows.
type ActivationEventRepository struct {
	db     *gorm.DB
	mapper mappers.ActivationEventMapper
	logger logger.Interface
}

// NewActivationEventRepository creates a new activation event repository
func NewActivationEventRepository(db *gorm.DB, logger logger.Interface) activationevent.Repository {
	return &ActivationEventRepository{
		db:     db,
		mapper: mappers.NewActivationEventMapper(),
		logger: logger,
	}
}

func (r *ActivationEventRepository) Append(ctx context.Context, event *activationevent.ActivationEvent) error {
	model := r.mapper.ToModel(event)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append activation event", "card_id", model.CardID, "error", err)
		return fmt.Errorf("failed to append activation event: %w", err)
	}
	event.SetID(model.ID)
	return nil
}

func (r *ActivationEventRepository) find(ctx context.Context, q *gorm.DB, cardID uint) ([]*activationevent.ActivationEvent, error) {
	var modelList []*models.ActivationEventModel
	if err := q.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list activation events", "card_id", cardID, "error", err)
		return nil, fmt.Errorf("failed to list activation events: %w", err)
	}
	return r.mapper.ToEntities(modelList), nil
}

func (r *ActivationEventRepository) ListByCard(ctx context.Context, cardID uint) ([]*activationevent.ActivationEvent, error) {
	q := db.GetTxFromContext(ctx, r.db).
		Where("card_id = ?", cardID).
		Order("created_at ASC, id ASC")
	return r.find(ctx, q, cardID)
}

func (r *ActivationEventRepository) ListRecentByCard(ctx context.Context, cardID uint, limit int) ([]*activationevent.ActivationEvent, error) {
	if limit <= 0 {
		return []*activationevent.ActivationEvent{}, nil
	}
	q := db.GetTxFromContext(ctx, r.db).
		Where("card_id = ?", cardID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	return r.find(ctx, q, cardID)
}

func (r *ActivationEventRepository) ListByCardSince(ctx context.Context, cardID uint, since time.Time) ([]*activationevent.ActivationEvent, error) {
	q := db.GetTxFromContext(ctx, r.db).
		Where("card_id = ? AND created_at >= ?", cardID, since).
		Order("created_at ASC, id ASC")
	return r.find(ctx, q, cardID)
}

func (r *ActivationEventRepository) CountByCard(ctx context.Context, cardID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationEventModel{}).
		Where("card_id = ?", cardID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count activation events", "card_id", cardID, "error", err)
		return 0, fmt.Errorf("failed to count activation events: %w", err)
	}
	return count, nil
}

type cardEventCount struct {
	CardID uint
	Cnt    int64
}

func (r *ActivationEventRepository) CountByCards(ctx context.Context, cardIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(cardIDs))
	if len(cardIDs) == 0 {
		return counts, nil
	}

	var rows []cardEventCount
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationEventModel{}).
		Select("card_id, COUNT(*) AS cnt").
		Where("card_id IN ?", cardIDs).
		Group("card_id").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count activation events by card", "cards", len(cardIDs), "error", err)
		return nil, fmt.Errorf("failed to count activation events: %w", err)
	}
	for _, row := range rows {
		counts[row.CardID] = row.Cnt
	}
	return counts, nil
}

func (r *ActivationEventRepository) LastViewedAt(ctx context.Context, cardID uint) (*time.Time, error) {
	var model models.ActivationEventModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("card_id = ?", cardID).
		Order("created_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get last activation event", "card_id", cardID, "error", err)
		return nil, fmt.Errorf("failed to get last activation event: %w", err)
	}
	t := model.CreatedAt.UTC()
	return &t, nil
}

func (r *ActivationEventRepository) DeleteByCard(ctx context.Context, cardID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("card_id = ?", cardID).Delete(&models.ActivationEventModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete activation events", "card_id", cardID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete activation events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
