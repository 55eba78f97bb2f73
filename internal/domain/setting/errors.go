package setting

import "errors"

var (
	ErrSettingNotFound = errors.New("setting not found")

	// ErrInvalidValueType wraps values that do not parse as the setting's declared type.
	ErrInvalidValueType = errors.New("invalid value type")
)
