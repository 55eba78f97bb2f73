package models

import (
	"time"

	"cardly/internal/shared/constants"
)

// ActivationCodeModel is the GORM model for activation_codes
type ActivationCodeModel struct {
	ID                 uint    `gorm:"primarykey"`
	Code               string  `gorm:"uniqueIndex;not null;size:32"`
	Status             string  `gorm:"not null;default:available;size:20;index:idx_activation_codes_status"`
	Plan               string  `gorm:"not null;size:20"`
	AmountCents        int64   `gorm:"not null;default:0"`
	Currency           string  `gorm:"not null;default:BRL;size:3"`
	CustomerName       *string `gorm:"size:100"`
	CustomerEmail      *string `gorm:"size:255;index:idx_activation_codes_customer_email"`
	CustomerPhone      *string `gorm:"size:30"`
	PaymentMethod      *string `gorm:"size:30"`
	PaymentReferenceID *string `gorm:"size:100;index:idx_activation_codes_payment_ref"`
	SoldAt             *time.Time
	ActivatedAt        *time.Time
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (ActivationCodeModel) TableName() string {
	return constants.TableActivationCodes
}
