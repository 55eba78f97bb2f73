package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "cardly/internal/domain/card/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/errors"
)

func newPendingCard(t *testing.T) *Card {
	t.Helper()
	owner := uint(5)
	c, err := NewCard(&owner, "  João Souza ", Profile{Company: "Acme"}, sharedvo.PlanBasic, "joao-souza-abc123", "12345678")
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }

func TestNewCard(t *testing.T) {
	c := newPendingCard(t)
	assert.Equal(t, "João Souza", c.Name())
	assert.Equal(t, vo.StatusPending, c.Status())
	assert.Equal(t, vo.PaymentStatusPending, c.PaymentStatus())
	assert.Zero(t, c.ClickCount())
	assert.Nil(t, c.ActivatedAt())
	assert.True(t, c.IsOwnedBy(5))
	assert.False(t, c.IsOwnedBy(6))

	_, err := NewCard(nil, " ", Profile{}, sharedvo.PlanBasic, "s", "1")
	assert.True(t, errors.IsValidationError(err))

	_, err = NewCard(nil, "Ana", Profile{}, sharedvo.Plan("gold"), "s", "1")
	assert.True(t, errors.IsValidationError(err))
}

func TestCard_ActivateWithCode(t *testing.T) {
	c := newPendingCard(t)
	c.ActivateWithCode("ABCD1234", sharedvo.PlanBusiness)

	assert.Equal(t, vo.StatusActivated, c.Status())
	assert.Equal(t, vo.PaymentStatusPaid, c.PaymentStatus())
	assert.Equal(t, sharedvo.PlanBusiness, c.Plan())
	require.NotNil(t, c.ActivationCode())
	assert.Equal(t, "ABCD1234", *c.ActivationCode())
	assert.NotNil(t, c.ActivatedAt())
	assert.NotNil(t, c.PurchasedAt())
}

func TestCard_ToggleStatus(t *testing.T) {
	c := newPendingCard(t)

	assert.Equal(t, vo.StatusActivated, c.ToggleStatus())
	require.NotNil(t, c.ActivatedAt())
	first := *c.ActivatedAt()

	assert.Equal(t, vo.StatusPending, c.ToggleStatus())
	assert.Equal(t, first, *c.ActivatedAt())

	assert.False(t, c.Deactivate())
	assert.True(t, c.Activate())
	assert.False(t, c.Activate())
}

func TestCard_ApplyProfile(t *testing.T) {
	c := newPendingCard(t)
	slug, code := c.Slug(), c.Code()

	err := c.ApplyProfile(ProfilePatch{
		JobTitle:    strPtr(" CTO "),
		Bio:         strPtr("**hi**"),
		SocialLinks: map[string]string{"LinkedIn": "https://linkedin.com/in/joao", "x": " "},
	})
	require.NoError(t, err)

	assert.Equal(t, "CTO", c.Profile().JobTitle)
	assert.Equal(t, "Acme", c.Profile().Company)
	assert.Equal(t, map[string]string{"linkedin": "https://linkedin.com/in/joao"}, c.SocialLinks())
	assert.Equal(t, slug, c.Slug())
	assert.Equal(t, code, c.Code())

	err = c.ApplyProfile(ProfilePatch{Name: strPtr("  ")})
	assert.True(t, errors.IsValidationError(err))
}

func TestCard_ChangePaymentStatus(t *testing.T) {
	c := newPendingCard(t)

	require.NoError(t, c.ChangePaymentStatus(vo.PaymentStatusPaid))
	assert.NotNil(t, c.PurchasedAt())

	err := c.ChangePaymentStatus(vo.PaymentStatusPending)
	assert.True(t, errors.IsInvalidStateError(err))

	require.NoError(t, c.ChangePaymentStatus(vo.PaymentStatusRefunded))
	assert.True(t, errors.IsValidationError(c.ChangePaymentStatus(vo.PaymentStatus("x"))))
}

func TestCard_IsPubliclyVisible(t *testing.T) {
	now := time.Now().UTC()
	c := newPendingCard(t)
	assert.False(t, c.IsPubliclyVisible(now))

	c.Activate()
	assert.True(t, c.IsPubliclyVisible(now))

	past := now.Add(-time.Hour)
	c.SetExpiresAt(&past)
	assert.False(t, c.IsPubliclyVisible(now))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"João Souza", "joao-souza"},
		{"  Ação & Cia.  Ltda ", "acao-cia-ltda"},
		{"!!!", "card"},
		{"", "card"},
		{"Café_Müller 2024", "cafe-muller-2024"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}

	long := Slugify("a very long name that keeps going and going and going forever and ever")
	assert.LessOrEqual(t, len(long), maxSlugBaseLength)
	assert.Equal(t, "maria-x1y2z3", BuildSlug("Maria", "x1y2z3"))
}
