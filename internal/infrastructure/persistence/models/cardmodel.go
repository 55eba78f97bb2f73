package models

import (
	"time"

	"gorm.io/datatypes"

	"cardly/internal/shared/constants"
)

// CardModel is the GORM model for cards
type CardModel struct {
	ID             uint   `gorm:"primarykey"`
	UserID         *uint  `gorm:"index:idx_cards_user_id"`
	Name           string `gorm:"not null;size:120"`
	JobTitle       string `gorm:"size:120"`
	Company        string `gorm:"size:120"`
	Phone          string `gorm:"size:30"`
	Email          string `gorm:"size:255"`
	Website        string `gorm:"size:255"`
	Bio            string `gorm:"type:text"`
	Location       string `gorm:"size:120"`
	SocialLinks    datatypes.JSONType[map[string]string]
	ColorTheme     string `gorm:"size:20"`
	Plan           string `gorm:"not null;size:20"`
	Status         string `gorm:"not null;default:pending;size:20;index:idx_cards_status"`
	PaymentStatus  string `gorm:"not null;default:pending;size:20"`
	UniqueSlug     string `gorm:"uniqueIndex;not null;size:80"`
	Code           string `gorm:"uniqueIndex;not null;size:16"`
	ClickCount     int64  `gorm:"not null;default:0"`
	AnalyticsData  datatypes.JSONMap
	ActivationCode *string `gorm:"uniqueIndex;size:32"`
	PurchasedAt    *time.Time
	ActivatedAt    *time.Time
	ExpiresAt      *time.Time
	Version        int `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (CardModel) TableName() string {
	return constants.TableCards
}
