package card

import (
	"context"

	"cardly/internal/shared/query"
)

// Repository persists cards. Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, card *Card) error
	GetByID(ctx context.Context, id uint) (*Card, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Card, error)
	GetBySlug(ctx context.Context, slug string) (*Card, error)
	GetByCode(ctx context.Context, code string) (*Card, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, card *Card) error
	// IncrementClickCount adds one to click_count in a single UPDATE.
	IncrementClickCount(ctx context.Context, id uint) error
	// Delete removes the card row. Callers remove its events in the same transaction.
	Delete(ctx context.Context, id uint) error
	// DeleteIfNoEvents removes the card only when no activation event references it,
	// evaluated by the DELETE statement itself. It reports whether a row was removed.
	DeleteIfNoEvents(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Card, int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Card, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// ListFilter narrows the admin card listing. Empty fields do not constrain.
type ListFilter struct {
	query.BaseFilter
	Search        string
	Status        string
	PaymentStatus string
	Plan          string
	OwnerID       *uint
}
