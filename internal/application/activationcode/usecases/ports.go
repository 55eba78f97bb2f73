package usecases

import (
	"context"
	"time"
)

// CodeSoldNotification is what the mail collaborator needs to tell a customer about a sale.
type CodeSoldNotification struct {
	CustomerName  string
	CustomerEmail string
	Code          string
	Plan          string
	Amount        string
	SoldAt        time.Time
}

// CodeSoldNotifier delivers sale notifications. Delivery is best effort.
type CodeSoldNotifier interface {
	NotifyCodeSold(ctx context.Context, n CodeSoldNotification) error
}

// SettingReader reads runtime settings.
type SettingReader interface {
	GetBool(ctx context.Context, key string) bool
	GetInt(ctx context.Context, key string) int
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
