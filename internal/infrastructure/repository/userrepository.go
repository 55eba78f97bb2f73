package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cardly/internal/domain/user"
	"cardly/internal/infrastructure/persistence/mappers"
	"cardly/internal/infrastructure/persistence/models"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/constants"
	"cardly/internal/shared/db"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/query"
)

var userSortColumns = query.SortColumns{
	"name":       "users.name",
	"email":      "users.email",
	"role":       "users.role",
	"is_active":  "users.is_active",
	"created_at": "users.created_at",
}

const userDefaultOrder = "users.created_at DESC"

// UserRepository implements user.Repository
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			r.logger.Errorw("user email already registered", "email", model.Email, "error", err)
			return errors.NewIntegrityConflictError("email already registered", model.Email)
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID, "email", model.Email)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var modelList []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get users by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return r.mapper.ToEntities(modelList)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", user.NormalizeEmail(email)).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"email":         model.Email,
			"password_hash": model.PasswordHash,
			"role":          model.Role,
			"is_active":     model.IsActive,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewIntegrityConflictError("email already registered", model.Email)
		}
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(constants.ErrMsgUserNotFound)
	}

	r.logger.Infow("user updated successfully", "id", model.ID)
	return nil
}

func (r *UserRepository) SetActiveByIDs(ctx context.Context, ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id IN ? AND is_active <> ?", ids, active).
		Updates(map[string]interface{}{
			"is_active":  active,
			"version":    gorm.Expr("version + ?", 1),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to change user activity", "count", len(ids), "active", active, "error", result.Error)
		return 0, fmt.Errorf("failed to update users: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *UserRepository) DeleteIfNoCards(ctx context.Context, id uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", id).
		Where("NOT EXISTS (SELECT 1 FROM " + constants.TableCards +
			" WHERE " + constants.TableCards + ".user_id = " + constants.TableUsers + ".id)").
		Delete(&models.UserModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

type userListRow struct {
	models.UserModel
	CardsCount int64
	TotalViews int64
}

// filtered builds the users query joined with per-user card aggregates.
func (r *UserRepository) filtered(ctx context.Context, filter user.ListFilter) *gorm.DB {
	tx := db.GetTxFromContext(ctx, r.db)
	cardStats := tx.Session(&gorm.Session{NewDB: true}).
		Table(constants.TableCards).
		Select("user_id, COUNT(*) AS cnt, COALESCE(SUM(click_count), 0) AS views").
		Where("user_id IS NOT NULL").
		Group("user_id")

	q := tx.Table(constants.TableUsers).
		Joins("LEFT JOIN (?) AS card_stats ON card_stats.user_id = users.id", cardStats)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("users.name LIKE ? OR users.email LIKE ?", like, like)
	}
	if filter.Role != "" {
		q = q.Where("users.role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("users.is_active = ?", *filter.IsActive)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("users.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("users.created_at < ?", *filter.CreatedTo)
	}
	switch filter.CardsCount {
	case user.CardsBucketNone:
		q = q.Where("COALESCE(card_stats.cnt, 0) = 0")
	case user.CardsBucketHasCards:
		q = q.Where("COALESCE(card_stats.cnt, 0) >= 1")
	case user.CardsBucketMultiple:
		q = q.Where("COALESCE(card_stats.cnt, 0) >= 2")
	}
	return q
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.ListItem, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	q := r.filtered(ctx, filter).
		Select("users.*, COALESCE(card_stats.cnt, 0) AS cards_count, COALESCE(card_stats.views, 0) AS total_views").
		Order(userSortColumns.OrderClause(filter.SortFilter, userDefaultOrder)).
		Order("users.id DESC")
	if !filter.Unpaged() {
		q = q.Offset(filter.Offset()).Limit(filter.Limit())
	}

	var rows []userListRow
	if err := q.Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]*user.ListItem, 0, len(rows))
	for i := range rows {
		entity, err := r.mapper.ToEntity(&rows[i].UserModel)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map user: %w", err)
		}
		items = append(items, &user.ListItem{
			User:       entity,
			CardsCount: rows[i].CardsCount,
			TotalViews: rows[i].TotalViews,
		})
	}
	return items, total, nil
}
