package usecases

import (
	"context"

	"cardly/internal/domain/activationcode"
)

// CodeRedeemer consumes a sold activation code inside the caller's transaction.
type CodeRedeemer interface {
	Execute(ctx context.Context, code string) (*activationcode.ActivationCode, error)
}

type SettingReader interface {
	GetBool(ctx context.Context, key string) bool
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BioRenderer turns a Markdown bio into HTML that is safe to embed.
type BioRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}
