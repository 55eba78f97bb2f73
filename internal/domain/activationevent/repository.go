package activationevent

import (
	"context"
	"time"
)

// Repository is append-only: events are never updated and only removed with their card.
type Repository interface {
	Append(ctx context.Context, event *ActivationEvent) error
	// ListByCard returns events oldest first.
	ListByCard(ctx context.Context, cardID uint) ([]*ActivationEvent, error)
	// ListRecentByCard returns the newest limit events, newest first.
	ListRecentByCard(ctx context.Context, cardID uint, limit int) ([]*ActivationEvent, error)
	// ListByCardSince returns events created at or after since, oldest first.
	ListByCardSince(ctx context.Context, cardID uint, since time.Time) ([]*ActivationEvent, error)
	CountByCard(ctx context.Context, cardID uint) (int64, error)
	// CountByCards returns event counts keyed by card id; cards without events are absent.
	CountByCards(ctx context.Context, cardIDs []uint) (map[uint]int64, error)
	LastViewedAt(ctx context.Context, cardID uint) (*time.Time, error)
	DeleteByCard(ctx context.Context, cardID uint) (int64, error)
}
