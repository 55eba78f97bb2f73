package usecases

import (
	"context"
	"fmt"
	"strings"

	"cardly/internal/domain/card"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/id"
)

const (
	slugSuffixLength = 6
	legacyCodeLength = 8
)

func loadCard(ctx context.Context, repo card.Repository, cardID uint) (*card.Card, error) {
	c, err := repo.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("card not found", fmt.Sprintf("id=%d", cardID))
	}
	return c, nil
}

// checkOwnership lets admins through and limits everyone else to their own cards.
func checkOwnership(actor authorization.Actor, c *card.Card) error {
	if actor.IsAdmin() || c.IsOwnedBy(actor.UserID) {
		return nil
	}
	return errors.NewForbiddenError("card belongs to another user")
}

// isLegacyCode reports whether a public lookup is an all-digit legacy code.
func isLegacyCode(lookup string) bool {
	if lookup == "" {
		return false
	}
	for _, r := range lookup {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// identifierGenerator draws slugs and legacy codes that are free in the card table.
type identifierGenerator struct {
	cards       card.Repository
	maxAttempts int
}

func (g identifierGenerator) slug(ctx context.Context, name string) (string, error) {
	return id.GenerateUnique(ctx, g.maxAttempts,
		func() (string, error) {
			suffix, err := id.NewBase36(slugSuffixLength)
			if err != nil {
				return "", err
			}
			return card.BuildSlug(name, suffix), nil
		},
		g.cards.ExistsBySlug,
	)
}

func (g identifierGenerator) code(ctx context.Context) (string, error) {
	return id.GenerateUnique(ctx, g.maxAttempts,
		func() (string, error) { return id.NewNumeric(legacyCodeLength) },
		g.cards.ExistsByCode,
	)
}

func normalizeLookup(lookup string) string {
	return strings.ToLower(strings.TrimSpace(lookup))
}
