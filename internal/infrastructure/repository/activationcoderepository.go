package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/infrastructure/persistence/mappers"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/db"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/query"
)

const codeBatchSize = 100

var codeSortColumns = query.SortColumns{
	"code":       "code",
	"status":     "status",
	"plan":       "plan",
	"amount":     "amount_cents",
	"sold_at":    "sold_at",
	"created_at": "created_at",
}

// ActivationCodeRepository implements activationcode.Repository
type ActivationCodeRepository struct {
	db     *gorm.DB
	mapper mappers.ActivationCodeMapper
	logger logger.Interface
}

// NewActivationCodeRepository creates a new activation code repository
func NewActivationCodeRepository(db *gorm.DB, logger logger.Interface) activationcode.Repository {
	return &ActivationCodeRepository{
		db:     db,
		mapper: mappers.NewActivationCodeMapper(),
		logger: logger,
	}
}

func (r *ActivationCodeRepository) Create(ctx context.Context, code *activationcode.ActivationCode) error {
	model := r.mapper.ToModel(code)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			r.logger.Errorw("activation code already exists", "code", model.Code, "error", err)
			return errors.NewIntegrityConflictError("activation code already exists", model.Code)
		}
		r.logger.Errorw("failed to create activation code", "code", model.Code, "error", err)
		return fmt.Errorf("failed to create activation code: %w", err)
	}
	return code.SetID(model.ID)
}

func (r *ActivationCodeRepository) CreateBatch(ctx context.Context, codes []*activationcode.ActivationCode) error {
	if len(codes) == 0 {
		return nil
	}

	modelList := make([]*models.ActivationCodeModel, 0, len(codes))
	for _, c := range codes {
		modelList = append(modelList, r.mapper.ToModel(c))
	}

	if err := db.GetTxFromContext(ctx, r.db).CreateInBatches(modelList, codeBatchSize).Error; err != nil {
		if errors.IsDuplicateError(err) {
			r.logger.Errorw("activation code batch hit an existing code", "count", len(codes), "error", err)
			return errors.NewIntegrityConflictError("activation code already exists")
		}
		r.logger.Errorw("failed to create activation codes", "count", len(codes), "error", err)
		return fmt.Errorf("failed to create activation codes: %w", err)
	}

	for i, model := range modelList {
		if err := codes[i].SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivationCodeRepository) GetByID(ctx context.Context, id uint) (*activationcode.ActivationCode, error) {
	var model models.ActivationCodeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get activation code by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get activation code: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ActivationCodeRepository) GetByCode(ctx context.Context, code string) (*activationcode.ActivationCode, error) {
	var model models.ActivationCodeModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get activation code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get activation code: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ActivationCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationCodeModel{}).
		Where("code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check activation code: %w", err)
	}
	return count > 0, nil
}

// Update writes the transition guarded by the version the entity was loaded with.
func (r *ActivationCodeRepository) Update(ctx context.Context, code *activationcode.ActivationCode) error {
	model := r.mapper.ToModel(code)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationCodeModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":               model.Status,
			"customer_name":        model.CustomerName,
			"customer_email":       model.CustomerEmail,
			"customer_phone":       model.CustomerPhone,
			"payment_method":       model.PaymentMethod,
			"payment_reference_id": model.PaymentReferenceID,
			"sold_at":              model.SoldAt,
			"activated_at":         model.ActivatedAt,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update activation code", "code", model.Code, "error", result.Error)
		return fmt.Errorf("failed to update activation code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("activation code changed concurrently", "code", model.Code, "version", model.Version-1)
		return errors.NewConflictError("activation code was modified by another request", model.Code)
	}
	return nil
}

func (r *ActivationCodeRepository) List(ctx context.Context, filter activationcode.ListFilter) ([]*activationcode.ActivationCode, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationCodeModel{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Plan != "" {
		q = q.Where("plan = ?", filter.Plan)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("code LIKE ? OR customer_name LIKE ? OR customer_email LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count activation codes", "error", err)
		return nil, 0, fmt.Errorf("failed to count activation codes: %w", err)
	}

	q = q.Order(codeSortColumns.OrderClause(filter.SortFilter, "created_at DESC")).Order("id DESC")
	if !filter.Unpaged() {
		q = q.Offset(filter.Offset()).Limit(filter.Limit())
	}

	var modelList []*models.ActivationCodeModel
	if err := q.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list activation codes", "error", err)
		return nil, 0, fmt.Errorf("failed to list activation codes: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map activation codes: %w", err)
	}
	return entities, total, nil
}

type codeStatusRow struct {
	Status string
	Cnt    int64
	Amount int64
}

// Stats counts codes per status. Revenue covers every code that has been sold.
func (r *ActivationCodeRepository) Stats(ctx context.Context) (*activationcode.Stats, error) {
	var rows []codeStatusRow
	err := db.GetTxFromContext(ctx, r.db).Model(&models.ActivationCodeModel{}).
		Select("status, COUNT(*) AS cnt, COALESCE(SUM(amount_cents), 0) AS amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate activation codes", "error", err)
		return nil, fmt.Errorf("failed to aggregate activation codes: %w", err)
	}

	stats := &activationcode.Stats{}
	for _, row := range rows {
		switch vo.Status(row.Status) {
		case vo.StatusAvailable:
			stats.Available = row.Cnt
		case vo.StatusSold:
			stats.Sold = row.Cnt
			stats.SoldRevenueCents += row.Amount
		case vo.StatusActivated:
			stats.Activated = row.Cnt
			stats.SoldRevenueCents += row.Amount
		}
	}
	return stats, nil
}
