package models

import (
	"time"

	"cardly/internal/shared/constants"
)

// ActivationEventModel is the GORM model for activation_events. Rows are insert-only.
type ActivationEventModel struct {
	ID         uint      `gorm:"primarykey"`
	CardID     uint      `gorm:"not null;index:idx_activation_events_card_created,priority:1"`
	IPAddress  string    `gorm:"size:45"`
	UserAgent  string    `gorm:"size:512"`
	Location   *string   `gorm:"size:120"`
	DeviceType *string   `gorm:"size:20"`
	Referrer   *string   `gorm:"size:500"`
	CreatedAt  time.Time `gorm:"index:idx_activation_events_card_created,priority:2"`
}

// TableName specifies the table name for GORM
func (ActivationEventModel) TableName() string {
	return constants.TableActivationEvents
}
