package user

import (
	"context"
	"time"

	"cardly/internal/shared/query"
)

// Repository defines the interface for user data operations.
// Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	// SetActiveByIDs flips is_active on every listed user and returns the rows changed.
	SetActiveByIDs(ctx context.Context, ids []uint, active bool) (int64, error)
	// DeleteIfNoCards removes the user only when they own no card, evaluated by the
	// DELETE statement itself. It reports whether a row was removed.
	DeleteIfNoCards(ctx context.Context, id uint) (bool, error)
	// List returns users with their card aggregates. A negative PageSize disables paging.
	List(ctx context.Context, filter ListFilter) ([]*ListItem, int64, error)
}

// CardsBucket filters users by how many cards they own.
type CardsBucket string

const (
	CardsBucketAny      CardsBucket = ""
	CardsBucketNone     CardsBucket = "none"
	CardsBucketHasCards CardsBucket = "has_cards"
	CardsBucketMultiple CardsBucket = "multiple"
)

func (b CardsBucket) IsValid() bool {
	switch b {
	case CardsBucketAny, CardsBucketNone, CardsBucketHasCards, CardsBucketMultiple:
		return true
	}
	return false
}

// ListFilter composes the admin user listing filters. Zero values do not constrain.
type ListFilter struct {
	query.BaseFilter
	Search      string
	Role        string
	IsActive    *bool
	CreatedFrom *time.Time
	// CreatedTo is exclusive.
	CreatedTo  *time.Time
	CardsCount CardsBucket
}

// ListItem is a user row with aggregates over the cards they own.
type ListItem struct {
	User       *User
	CardsCount int64
	TotalViews int64
}
