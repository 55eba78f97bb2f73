package dto

import (
	"time"

	"cardly/internal/domain/card"
)

type CreateCardRequest struct {
	OwnerID        *uint             `json:"owner_id,omitempty"`
	Name           string            `json:"name" binding:"required,min=1,max=120"`
	JobTitle       string            `json:"job_title,omitempty" binding:"omitempty,max=120"`
	Company        string            `json:"company,omitempty" binding:"omitempty,max=120"`
	Phone          string            `json:"phone,omitempty" binding:"omitempty,max=40"`
	Email          string            `json:"email,omitempty" binding:"omitempty,email"`
	Website        string            `json:"website,omitempty" binding:"omitempty,url"`
	Bio            string            `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Location       string            `json:"location,omitempty" binding:"omitempty,max=120"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
	ColorTheme     string            `json:"color_theme,omitempty" binding:"omitempty,hexcolor"`
	Plan           string            `json:"plan,omitempty" binding:"omitempty,oneof=basic premium business"`
	ActivationCode string            `json:"activation_code,omitempty"`
	// Activate is honoured for admins creating a card without a code.
	Activate bool `json:"activate,omitempty"`
}

type UpdateCardRequest struct {
	Name        *string           `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	JobTitle    *string           `json:"job_title,omitempty" binding:"omitempty,max=120"`
	Company     *string           `json:"company,omitempty" binding:"omitempty,max=120"`
	Phone       *string           `json:"phone,omitempty" binding:"omitempty,max=40"`
	Email       *string           `json:"email,omitempty" binding:"omitempty,email"`
	Website     *string           `json:"website,omitempty" binding:"omitempty,url"`
	Bio         *string           `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Location    *string           `json:"location,omitempty" binding:"omitempty,max=120"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	ColorTheme  *string           `json:"color_theme,omitempty" binding:"omitempty,hexcolor"`

	// admin only
	Plan          *string    `json:"plan,omitempty" binding:"omitempty,oneof=basic premium business"`
	PaymentStatus *string    `json:"payment_status,omitempty" binding:"omitempty,oneof=pending paid failed refunded"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ClearExpiry   bool       `json:"clear_expiry,omitempty"`
}

// HasAdminFields reports whether the request touches fields reserved to admins.
func (r UpdateCardRequest) HasAdminFields() bool {
	return r.Plan != nil || r.PaymentStatus != nil || r.ExpiresAt != nil || r.ClearExpiry
}

type BulkCardsRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1,max=500"`
	Action string `json:"action" binding:"required,oneof=activate deactivate delete"`
}

type CardDTO struct {
	ID             uint              `json:"id"`
	OwnerID        *uint             `json:"owner_id,omitempty"`
	Name           string            `json:"name"`
	JobTitle       string            `json:"job_title,omitempty"`
	Company        string            `json:"company,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Email          string            `json:"email,omitempty"`
	Website        string            `json:"website,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Location       string            `json:"location,omitempty"`
	SocialLinks    map[string]string `json:"social_links"`
	ColorTheme     string            `json:"color_theme"`
	Plan           string            `json:"plan"`
	Status         string            `json:"status"`
	PaymentStatus  string            `json:"payment_status"`
	Slug           string            `json:"slug"`
	Code           string            `json:"code"`
	ClickCount     int64             `json:"click_count"`
	EventCount     *int64            `json:"event_count,omitempty"`
	ActivationCode *string           `json:"activation_code,omitempty"`
	PurchasedAt    *time.Time        `json:"purchased_at,omitempty"`
	ActivatedAt    *time.Time        `json:"activated_at,omitempty"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func ToCardDTO(c *card.Card) CardDTO {
	p := c.Profile()
	return CardDTO{
		ID:             c.ID(),
		OwnerID:        c.OwnerID(),
		Name:           c.Name(),
		JobTitle:       p.JobTitle,
		Company:        p.Company,
		Phone:          p.Phone,
		Email:          p.Email,
		Website:        p.Website,
		Bio:            p.Bio,
		Location:       p.Location,
		SocialLinks:    c.SocialLinks(),
		ColorTheme:     c.ColorTheme(),
		Plan:           c.Plan().String(),
		Status:         c.Status().String(),
		PaymentStatus:  c.PaymentStatus().String(),
		Slug:           c.Slug(),
		Code:           c.Code(),
		ClickCount:     c.ClickCount(),
		ActivationCode: c.ActivationCode(),
		PurchasedAt:    c.PurchasedAt(),
		ActivatedAt:    c.ActivatedAt(),
		ExpiresAt:      c.ExpiresAt(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// PublicCardDTO is what anonymous visitors see.
type PublicCardDTO struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	JobTitle    string            `json:"job_title,omitempty"`
	Company     string            `json:"company,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Email       string            `json:"email,omitempty"`
	Website     string            `json:"website,omitempty"`
	Location    string            `json:"location,omitempty"`
	BioHTML     string            `json:"bio_html,omitempty"`
	SocialLinks map[string]string `json:"social_links"`
	ColorTheme  string            `json:"color_theme"`
	Plan        string            `json:"plan"`
}

func ToPublicCardDTO(c *card.Card, bioHTML string) PublicCardDTO {
	p := c.Profile()
	return PublicCardDTO{
		Slug:        c.Slug(),
		Name:        c.Name(),
		JobTitle:    p.JobTitle,
		Company:     p.Company,
		Phone:       p.Phone,
		Email:       p.Email,
		Website:     p.Website,
		Location:    p.Location,
		BioHTML:     bioHTML,
		SocialLinks: c.SocialLinks(),
		ColorTheme:  c.ColorTheme(),
		Plan:        c.Plan().String(),
	}
}

type ListCardsResult struct {
	Items   []CardDTO
	Total   int64
	Page    int
	PerPage int
}

// BulkResult always reports affected and skipped together.
type BulkResult struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
	Skipped  int    `json:"skipped"`
	NotFound int    `json:"not_found"`
}
