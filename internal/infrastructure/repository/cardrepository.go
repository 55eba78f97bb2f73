package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cardly/internal/domain/card"
	"cardly/internal/infrastructure/persistence/mappers"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/constants"
	"cardly/internal/shared/db"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/query"
)

var cardSortColumns = query.SortColumns{
	"name":        "name",
	"status":      "status",
	"plan":        "plan",
	"click_count": "click_count",
	"views":       "click_count",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

// CardRepository implements card.Repository
type CardRepository struct {
	db     *gorm.DB
	mapper mappers.CardMapper
	logger logger.Interface
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB, logger logger.Interface) card.Repository {
	return &CardRepository{
		db:     db,
		mapper: mappers.NewCardMapper(),
		logger: logger,
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	model := r.mapper.ToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			r.logger.Errorw("card unique key already taken", "slug", model.UniqueSlug, "code", model.Code, "error", err)
			return errors.NewIntegrityConflictError("card slug, code or activation code already in use")
		}
		r.logger.Errorw("failed to create card", "slug", model.UniqueSlug, "error", err)
		return fmt.Errorf("failed to create card: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CardRepository) getOne(ctx context.Context, where string, arg interface{}) (*card.Card, error) {
	var model models.CardModel
	if err := db.GetTxFromContext(ctx, r.db).Where(where, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get card", "filter", where, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *CardRepository) GetByID(ctx context.Context, id uint) (*card.Card, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *CardRepository) GetBySlug(ctx context.Context, slug string) (*card.Card, error) {
	return r.getOne(ctx, "unique_slug = ?", slug)
}

func (r *CardRepository) GetByCode(ctx context.Context, code string) (*card.Card, error) {
	return r.getOne(ctx, "code = ?", code)
}

func (r *CardRepository) GetByIDs(ctx context.Context, ids []uint) ([]*card.Card, error) {
	if len(ids) == 0 {
		return []*card.Card{}, nil
	}
	var modelList []*models.CardModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get cards by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return r.mapper.ToEntities(modelList)
}

func (r *CardRepository) exists(ctx context.Context, where string, arg interface{}) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.CardModel{}).Where(where, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check card: %w", err)
	}
	return count > 0, nil
}

func (r *CardRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, "unique_slug = ?", slug)
}

func (r *CardRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "code = ?", code)
}

// Update writes every mutable column except click_count, which only
// IncrementClickCount touches.
func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	model := r.mapper.ToModel(c)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CardModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"user_id":         model.UserID,
			"name":            model.Name,
			"job_title":       model.JobTitle,
			"company":         model.Company,
			"phone":           model.Phone,
			"email":           model.Email,
			"website":         model.Website,
			"bio":             model.Bio,
			"location":        model.Location,
			"social_links":    model.SocialLinks,
			"color_theme":     model.ColorTheme,
			"plan":            model.Plan,
			"status":          model.Status,
			"payment_status":  model.PaymentStatus,
			"activation_code": model.ActivationCode,
			"purchased_at":    model.PurchasedAt,
			"activated_at":    model.ActivatedAt,
			"expires_at":      model.ExpiresAt,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update card", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(constants.ErrMsgCardNotFound)
	}
	return nil
}

func (r *CardRepository) IncrementClickCount(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.CardModel{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if result.Error != nil {
		r.logger.Errorw("failed to increment click count", "id", id, "error", result.Error)
		return fmt.Errorf("failed to increment click count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(constants.ErrMsgCardNotFound)
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.CardModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete card", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(constants.ErrMsgCardNotFound)
	}
	return nil
}

func (r *CardRepository) DeleteIfNoEvents(ctx context.Context, id uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", id).
		Where("NOT EXISTS (SELECT 1 FROM " + constants.TableActivationEvents +
			" WHERE " + constants.TableActivationEvents + ".card_id = " + constants.TableCards + ".id)").
		Delete(&models.CardModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete unviewed card", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to delete card: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CardRepository) List(ctx context.Context, filter card.ListFilter) ([]*card.Card, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.CardModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR unique_slug LIKE ? OR company LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Plan != "" {
		q = q.Where("plan = ?", filter.Plan)
	}
	if filter.OwnerID != nil {
		q = q.Where("user_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count cards", "error", err)
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	q = q.Order(cardSortColumns.OrderClause(filter.SortFilter, "created_at DESC")).Order("id DESC")
	if !filter.Unpaged() {
		q = q.Offset(filter.Offset()).Limit(filter.Limit())
	}

	var modelList []*models.CardModel
	if err := q.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list cards", "error", err)
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map cards: %w", err)
	}
	return entities, total, nil
}

func (r *CardRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*card.Card, error) {
	var modelList []*models.CardModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list cards by owner", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return r.mapper.ToEntities(modelList)
}

func (r *CardRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.CardModel{}).
		Where("user_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}
