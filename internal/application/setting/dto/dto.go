package dto

import (
	"time"

	"cardly/internal/domain/setting"
)

// SystemSettingResponse represents a single setting response
type SystemSettingResponse struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	ValueType   string    `json:"value_type"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"is_default"`
	UpdatedBy   uint      `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateSettingRequest represents the request to update a single setting
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

func ToSystemSettingResponse(s *setting.SystemSetting, isDefault bool) SystemSettingResponse {
	return SystemSettingResponse{
		Key:         s.Key(),
		Value:       s.Value(),
		ValueType:   string(s.ValueType()),
		Description: s.Description(),
		IsDefault:   isDefault,
		UpdatedBy:   s.UpdatedBy(),
		UpdatedAt:   s.UpdatedAt(),
	}
}
