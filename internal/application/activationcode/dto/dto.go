package dto

import (
	"time"

	"cardly/internal/domain/activationcode"
)

type ActivationCodeDTO struct {
	ID                 uint       `json:"id"`
	Code               string     `json:"code"`
	Status             string     `json:"status"`
	Plan               string     `json:"plan"`
	AmountCents        int64      `json:"amount_cents"`
	Currency           string     `json:"currency"`
	Amount             string     `json:"amount"`
	CustomerName       string     `json:"customer_name,omitempty"`
	CustomerEmail      string     `json:"customer_email,omitempty"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	PaymentReferenceID string     `json:"payment_reference_id,omitempty"`
	SoldAt             *time.Time `json:"sold_at,omitempty"`
	ActivatedAt        *time.Time `json:"activated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToActivationCodeDTO(c *activationcode.ActivationCode) ActivationCodeDTO {
	customer := c.Customer()
	payment := c.Payment()
	return ActivationCodeDTO{
		ID:                 c.ID(),
		Code:               c.Code(),
		Status:             c.Status().String(),
		Plan:               c.Plan().String(),
		AmountCents:        c.Amount().AmountInCents(),
		Currency:           c.Amount().Currency(),
		Amount:             c.Amount().String(),
		CustomerName:       customer.Name,
		CustomerEmail:      customer.Email,
		CustomerPhone:      customer.Phone,
		PaymentMethod:      payment.Method,
		PaymentReferenceID: payment.ReferenceID,
		SoldAt:             c.SoldAt(),
		ActivatedAt:        c.ActivatedAt(),
		CreatedAt:          c.CreatedAt(),
	}
}

type CodeStatsDTO struct {
	Total            int64  `json:"total"`
	Available        int64  `json:"available"`
	Sold             int64  `json:"sold"`
	Activated        int64  `json:"activated"`
	SoldRevenueCents int64  `json:"sold_revenue_cents"`
	SoldRevenue      string `json:"sold_revenue"`
}

type SeedPoolResult struct {
	Created int      `json:"created"`
	Codes   []string `json:"codes"`
}

type ListCodesResult struct {
	Items   []ActivationCodeDTO
	Total   int64
	Page    int
	PerPage int
}
