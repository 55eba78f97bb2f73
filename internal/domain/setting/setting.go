package setting

import (
	"fmt"
	"strconv"
	"time"

	"cardly/internal/shared/biztime"
)

// ValueType defines the type of a setting value
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

// Known runtime setting keys.
const (
	KeyProtectViewedOnDelete = "cards.protect_viewed_on_delete"
	KeyCodeSoldMailEnabled   = "notifications.code_sold_mail_enabled"
	KeyRecentEventsLimit     = "analytics.recent_events_limit"
	KeyDefaultCodeAmount     = "codes.default_amount_cents"
)

// SystemSetting is one runtime-tunable key/value pair.
type SystemSetting struct {
	id          uint
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSystemSetting(key string, valueType ValueType, value, description string) (*SystemSetting, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("invalid value type: %s", valueType)
	}
	if err := checkValue(valueType, value); err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &SystemSetting{
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSystemSetting reconstructs a SystemSetting from persistence layer
func ReconstructSystemSetting(id uint, key, value string, valueType ValueType, description string, updatedBy uint, createdAt, updatedAt time.Time) *SystemSetting {
	return &SystemSetting{
		id:          id,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedBy:   updatedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func isValidValueType(t ValueType) bool {
	return t == ValueTypeString || t == ValueTypeInt || t == ValueTypeBool
}

func checkValue(t ValueType, value string) error {
	switch t {
	case ValueTypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %q is not an int", ErrInvalidValueType, value)
		}
	case ValueTypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %q is not a bool", ErrInvalidValueType, value)
		}
	}
	return nil
}

// SetValue replaces the value after checking it parses as the declared type.
func (s *SystemSetting) SetValue(value string, updatedBy uint) error {
	if err := checkValue(s.valueType, value); err != nil {
		return err
	}
	s.value = value
	s.updatedBy = updatedBy
	s.updatedAt = biztime.NowUTC()
	return nil
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedBy() uint      { return s.updatedBy }
func (s *SystemSetting) CreatedAt() time.Time { return s.createdAt }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the setting ID (only for persistence layer use)
func (s *SystemSetting) SetID(id uint) {
	s.id = id
}
