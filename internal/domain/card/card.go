package card

import (
	"fmt"
	"strings"
	"time"

	vo "cardly/internal/domain/card/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
)

// Profile is the editable contact data shown on the public card.
type Profile struct {
	JobTitle string
	Company  string
	Phone    string
	Email    string
	Website  string
	Bio      string
	Location string
}

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name        *string
	JobTitle    *string
	Company     *string
	Phone       *string
	Email       *string
	Website     *string
	Bio         *string
	Location    *string
	ColorTheme  *string
	SocialLinks map[string]string
}

// Card is a user's digital business card. Slug and code are fixed at creation.
type Card struct {
	id             uint
	ownerID        *uint
	name           string
	profile        Profile
	socialLinks    map[string]string
	colorTheme     string
	plan           sharedvo.Plan
	status         vo.Status
	paymentStatus  vo.PaymentStatus
	slug           string
	code           string
	clickCount     int64
	analyticsData  map[string]any
	activationCode *string
	purchasedAt    *time.Time
	activatedAt    *time.Time
	expiresAt      *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

const DefaultColorTheme = "#1f2937"

// NewCard creates a pending card with a pre-generated slug and code.
func NewCard(ownerID *uint, name string, profile Profile, plan sharedvo.Plan, slug, code string) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("card name is required")
	}
	if len(name) > 120 {
		return nil, errors.NewValidationError("card name is too long")
	}
	if !plan.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid plan: %s", plan))
	}
	if slug == "" || code == "" {
		return nil, fmt.Errorf("slug and code are required")
	}

	now := biztime.NowUTC()
	return &Card{
		ownerID:       ownerID,
		name:          name,
		profile:       profile,
		socialLinks:   map[string]string{},
		colorTheme:    DefaultColorTheme,
		plan:          plan,
		status:        vo.StatusPending,
		paymentStatus: vo.PaymentStatusPending,
		slug:          slug,
		code:          code,
		analyticsData: map[string]any{},
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructParams carries persisted state.
type ReconstructParams struct {
	ID             uint
	OwnerID        *uint
	Name           string
	Profile        Profile
	SocialLinks    map[string]string
	ColorTheme     string
	Plan           sharedvo.Plan
	Status         vo.Status
	PaymentStatus  vo.PaymentStatus
	Slug           string
	Code           string
	ClickCount     int64
	AnalyticsData  map[string]any
	ActivationCode *string
	PurchasedAt    *time.Time
	ActivatedAt    *time.Time
	ExpiresAt      *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ReconstructCard(p ReconstructParams) *Card {
	links := p.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	analytics := p.AnalyticsData
	if analytics == nil {
		analytics = map[string]any{}
	}
	return &Card{
		id:             p.ID,
		ownerID:        p.OwnerID,
		name:           p.Name,
		profile:        p.Profile,
		socialLinks:    links,
		colorTheme:     p.ColorTheme,
		plan:           p.Plan,
		status:         p.Status,
		paymentStatus:  p.PaymentStatus,
		slug:           p.Slug,
		code:           p.Code,
		clickCount:     p.ClickCount,
		analyticsData:  analytics,
		activationCode: p.ActivationCode,
		purchasedAt:    p.PurchasedAt,
		activatedAt:    p.ActivatedAt,
		expiresAt:      p.ExpiresAt,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

func (c *Card) touch() {
	c.updatedAt = biztime.NowUTC()
	c.version++
}

// ActivateWithCode activates a card paid for by a redeemed activation code.
func (c *Card) ActivateWithCode(code string, plan sharedvo.Plan) {
	now := biztime.NowUTC()
	c.activationCode = &code
	c.plan = plan
	c.paymentStatus = vo.PaymentStatusPaid
	c.purchasedAt = &now
	c.status = vo.StatusActivated
	c.activatedAt = &now
	c.touch()
}

// Activate moves the card to activated and stamps activated_at. It reports whether anything changed.
func (c *Card) Activate() bool {
	if c.status.IsActivated() {
		return false
	}
	now := biztime.NowUTC()
	c.status = vo.StatusActivated
	c.activatedAt = &now
	c.touch()
	return true
}

// Deactivate moves the card back to pending. activated_at keeps the last activation.
func (c *Card) Deactivate() bool {
	if !c.status.IsActivated() {
		return false
	}
	c.status = vo.StatusPending
	c.touch()
	return true
}

// ToggleStatus flips pending and activated and returns the new status.
func (c *Card) ToggleStatus() vo.Status {
	if c.status.IsActivated() {
		c.Deactivate()
	} else {
		c.Activate()
	}
	return c.status
}

// ApplyProfile applies a partial profile update.
func (c *Card) ApplyProfile(p ProfilePatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return errors.NewValidationError("card name cannot be empty")
		}
		c.name = name
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.profile.JobTitle, p.JobTitle)
	set(&c.profile.Company, p.Company)
	set(&c.profile.Phone, p.Phone)
	set(&c.profile.Email, p.Email)
	set(&c.profile.Website, p.Website)
	set(&c.profile.Bio, p.Bio)
	set(&c.profile.Location, p.Location)
	set(&c.colorTheme, p.ColorTheme)
	if p.SocialLinks != nil {
		links := make(map[string]string, len(p.SocialLinks))
		for k, v := range p.SocialLinks {
			if v = strings.TrimSpace(v); v != "" {
				links[strings.ToLower(strings.TrimSpace(k))] = v
			}
		}
		c.socialLinks = links
	}
	c.touch()
	return nil
}

func (c *Card) ChangePlan(plan sharedvo.Plan) error {
	if !plan.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid plan: %s", plan))
	}
	c.plan = plan
	c.touch()
	return nil
}

// ChangePaymentStatus enforces the payment status transition table.
func (c *Card) ChangePaymentStatus(next vo.PaymentStatus) error {
	if !next.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid payment status: %s", next))
	}
	if !c.paymentStatus.CanTransitionTo(next) {
		return errors.NewInvalidStateError(
			"payment status transition not allowed",
			fmt.Sprintf("%s -> %s", c.paymentStatus, next),
		)
	}
	if next == c.paymentStatus {
		return nil
	}
	if next.IsPaid() && c.purchasedAt == nil {
		now := biztime.NowUTC()
		c.purchasedAt = &now
	}
	c.paymentStatus = next
	c.touch()
	return nil
}

func (c *Card) SetExpiresAt(t *time.Time) {
	c.expiresAt = t
	c.touch()
}

// IsExpired reports whether the card has an expiry in the past.
func (c *Card) IsExpired(now time.Time) bool {
	return c.expiresAt != nil && now.After(*c.expiresAt)
}

// IsPubliclyVisible reports whether the public view may render this card.
func (c *Card) IsPubliclyVisible(now time.Time) bool {
	return c.status.IsActivated() && !c.IsExpired(now)
}

func (c *Card) IsOwnedBy(userID uint) bool {
	return c.ownerID != nil && *c.ownerID == userID
}

func (c *Card) ID() uint                        { return c.id }
func (c *Card) OwnerID() *uint                  { return c.ownerID }
func (c *Card) Name() string                    { return c.name }
func (c *Card) Profile() Profile                { return c.profile }
func (c *Card) ColorTheme() string              { return c.colorTheme }
func (c *Card) Plan() sharedvo.Plan             { return c.plan }
func (c *Card) Status() vo.Status               { return c.status }
func (c *Card) PaymentStatus() vo.PaymentStatus { return c.paymentStatus }
func (c *Card) Slug() string                    { return c.slug }
func (c *Card) Code() string                    { return c.code }
func (c *Card) ClickCount() int64               { return c.clickCount }
func (c *Card) ActivationCode() *string         { return c.activationCode }
func (c *Card) PurchasedAt() *time.Time         { return c.purchasedAt }
func (c *Card) ActivatedAt() *time.Time         { return c.activatedAt }
func (c *Card) ExpiresAt() *time.Time           { return c.expiresAt }
func (c *Card) Version() int                    { return c.version }
func (c *Card) CreatedAt() time.Time            { return c.createdAt }
func (c *Card) UpdatedAt() time.Time            { return c.updatedAt }

// SocialLinks returns a copy of the social links.
func (c *Card) SocialLinks() map[string]string {
	out := make(map[string]string, len(c.socialLinks))
	for k, v := range c.socialLinks {
		out[k] = v
	}
	return out
}

// AnalyticsData returns the opaque analytics blob.
func (c *Card) AnalyticsData() map[string]any {
	return c.analyticsData
}

// SetID sets the card ID (only for persistence layer use)
func (c *Card) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("card ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("card ID cannot be zero")
	}
	c.id = id
	return nil
}
