package models

import (
	"time"

	"cardly/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID           uint      `gorm:"primarykey"`
	Name         string    `gorm:"not null;size:100"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `gorm:"size:255"`
	Role         string    `gorm:"not null;default:client;size:20;index:idx_users_role"`
	IsActive     bool      `gorm:"not null;default:true"`
	Version      int       `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"index:idx_users_created_at"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
