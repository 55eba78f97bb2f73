package activationcode

import (
	"context"

	"cardly/internal/shared/query"
)

// Repository persists activation codes. Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, code *ActivationCode) error
	CreateBatch(ctx context.Context, codes []*ActivationCode) error
	GetByID(ctx context.Context, id uint) (*ActivationCode, error)
	GetByCode(ctx context.Context, code string) (*ActivationCode, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// Update persists a transition. It fails when the stored version moved since the
	// code was loaded, so two racing transitions cannot both succeed.
	Update(ctx context.Context, code *ActivationCode) error
	List(ctx context.Context, filter ListFilter) ([]*ActivationCode, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ListFilter narrows the admin code listing. Empty fields do not constrain.
type ListFilter struct {
	query.BaseFilter
	Status string
	Plan   string
	Search string
}

// Stats summarises the ledger.
type Stats struct {
	Available        int64
	Sold             int64
	Activated        int64
	SoldRevenueCents int64
}

func (s Stats) Total() int64 {
	return s.Available + s.Sold + s.Activated
}
